package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jpfielding/pgm.go/pkg/logging"
	"github.com/spf13/cobra"
)

func NewRoot(ctx context.Context, gitsha string) *cobra.Command {
	// rotating log file opened for the current run, if any
	var logCloser io.Closer
	closeLog := func() {
		if logCloser == nil {
			return
		}
		slog.SetDefault(logging.Logger(os.Stderr, false, slog.LevelInfo))
		if err := logCloser.Close(); err != nil {
			fmt.Fprintln(os.Stderr, "closing log file:", err)
		}
		logCloser = nil
	}
	cmd := &cobra.Command{
		Use:   "pgmctl",
		Short: "a CLI to inspect, transform and equalize grayscale rasters",
		Long:  "pgmctl reads P2/P5 rasters, applies intensity transforms and histogram equalization, and writes P2 or display formats",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logLevel, _ := cmd.Flags().GetString("log-level")
			asJSON, _ := cmd.Flags().GetBool("log-json")
			logFile, _ := cmd.Flags().GetString("log-file")
			closeLog()

			// Parse log level
			var level slog.Level
			levelErr := level.UnmarshalText([]byte(strings.ToUpper(logLevel)))
			if levelErr != nil {
				level = slog.LevelInfo
			}

			var w io.Writer = os.Stderr
			if logFile != "" {
				maxSize, _ := cmd.Flags().GetInt("log-max-size")
				backups, _ := cmd.Flags().GetInt("log-max-backups")
				age, _ := cmd.Flags().GetInt("log-max-age")
				fw := logging.FileWriter(logging.Rotation{
					Path:       logFile,
					MaxSizeMB:  maxSize,
					MaxBackups: backups,
					MaxAgeDays: age,
				})
				w, logCloser = fw, fw
			}
			slog.SetDefault(logging.Logger(w, asJSON, level))

			if levelErr != nil {
				slog.WarnContext(ctx, "Invalid log level, defaulting to INFO", "level", logLevel, "error", levelErr)
			}
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			closeLog()
		},
		Run: func(cmd *cobra.Command, args []string) {
			printCommandTree(cmd, 0)
		},
	}
	cmd.AddCommand(
		NewVersionCmd(ctx, gitsha),
		NewInfoCmd(ctx),
		NewHistogramCmd(ctx),
		NewTransformCmd(ctx),
		NewEqualizeCmd(ctx),
		NewApplyCmd(ctx),
		NewExportCmd(ctx),
		NewKernelsCmd(ctx),
	)
	pf := cmd.PersistentFlags()
	pf.String("log-level", "INFO", "Log level (DEBUG, INFO, WARN, ERROR)")
	pf.Bool("log-json", false, "emit logs as JSON")
	pf.String("log-file", "", "write logs to a rotating file instead of stderr")
	pf.Int("log-max-size", 10, "rotate the log file after this many megabytes")
	pf.Int("log-max-backups", 3, "rotated log files to keep")
	pf.Int("log-max-age", 28, "days to keep rotated log files")
	return cmd
}

func printCommandTree(cmd *cobra.Command, indent int) {
	fmt.Fprintln(cmd.OutOrStdout(), strings.Repeat("\t", indent), cmd.Use+":", cmd.Short)
	for _, subCmd := range cmd.Commands() {
		printCommandTree(subCmd, indent+1)
	}
}

func NewVersionCmd(ctx context.Context, gitsha string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "git sha for this build",
		Long:  "git sha for this build",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), gitsha)
		},
	}
	return cmd
}
