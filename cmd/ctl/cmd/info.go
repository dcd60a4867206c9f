package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jpfielding/pgm.go/pkg/export"
	"github.com/jpfielding/pgm.go/pkg/pgm"
	"github.com/spf13/cobra"
)

// Info summarizes a raster
type Info struct {
	ID       string `json:"id"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Levels   int    `json:"levels"`
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Peak     int    `json:"peak"`
	PeakFreq int    `json:"peak_count"`
}

// NewInfoCmd prints dimensions, level count and intensity range
func NewInfoCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info [raster]",
		Short: "raster summary",
		Long:  "Decodes a P2/P5 raster and prints its dimensions, level count, intensity range and most frequent level.",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, img, err := loadImage(ctx, cmd, args)
			if err != nil {
				return err
			}
			hist, err := pgm.ComputeHistogram(img)
			if err != nil {
				return err
			}
			lo, hi := img.MinMax()
			peak, freq := hist.Peak()
			info := Info{
				ID:       imageID(img),
				Width:    img.Width,
				Height:   img.Height,
				Levels:   img.MaxLevel,
				Min:      lo,
				Max:      hi,
				Peak:     peak,
				PeakFreq: freq,
			}

			out := cmd.OutOrStdout()
			switch format, _ := cmd.Flags().GetString("format"); format {
			case "json":
				return json.NewEncoder(out).Encode(info)
			default:
				fmt.Fprintf(out, "ID: %s\n", info.ID)
				fmt.Fprintf(out, "Size: %dx%d\n", info.Width, info.Height)
				fmt.Fprintf(out, "Levels: %d (maxval %d)\n", info.Levels, info.Levels-1)
				fmt.Fprintf(out, "Range: min=%d, max=%d\n", info.Min, info.Max)
				fmt.Fprintf(out, "Peak: level %d (%d samples)\n", info.Peak, info.PeakFreq)
				return nil
			}
		},
	}
	addInputFlags(cmd)
	pf := cmd.PersistentFlags()
	pf.StringP("format", "f", "text", "output format (text|json)")
	return cmd
}

// NewHistogramCmd prints the intensity histogram
func NewHistogramCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "histogram [raster]",
		Short: "intensity histogram",
		Long:  "Prints the per-level sample counts as a bar plot or JSON array, optionally after equalization.",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, img, err := loadImage(ctx, cmd, args)
			if err != nil {
				return err
			}
			var hist pgm.Histogram
			if eq, _ := cmd.Flags().GetBool("equalized"); eq {
				hist, err = pgm.Equalize(img)
			} else {
				hist, err = pgm.ComputeHistogram(img)
			}
			if err != nil {
				return err
			}

			switch format, _ := cmd.Flags().GetString("format"); format {
			case "json":
				return json.NewEncoder(cmd.OutOrStdout()).Encode(hist)
			default:
				bins, _ := cmd.Flags().GetInt("bins")
				width, _ := cmd.Flags().GetInt("width")
				skip, _ := cmd.Flags().GetBool("skip-empty")
				return export.PlotHistogram(cmd.OutOrStdout(), hist, bins, width, skip)
			}
		},
	}
	addInputFlags(cmd)
	pf := cmd.PersistentFlags()
	pf.StringP("format", "f", "plot", "output format (plot|json)")
	pf.Int("bins", 32, "plot buckets (0 for one per level)")
	pf.Int("width", 60, "plot bar width in characters")
	pf.Bool("skip-empty", false, "omit empty buckets from the plot")
	pf.Bool("equalized", false, "equalize before reporting")
	return cmd
}
