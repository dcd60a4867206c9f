package cmd

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jpfielding/pgm.go/pkg/logging"
	"github.com/jpfielding/pgm.go/pkg/pgm"
	"github.com/jpfielding/pgm.go/pkg/util"
	"github.com/spf13/cobra"
)

// addInputFlags registers the raster source flag shared by every image command
func addInputFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringP("uri", "u", "", "raster path, '-' for stdin, or http(s) URL; may also be given as an argument")
}

// addOutputFlags registers the P2 destination flag
func addOutputFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringP("out", "o", "-", "P2 output path ('-' for stdout, '.zst' suffix compresses)")
}

// loadImage resolves the input flag/argument and decodes it. The returned
// context carries the image's content id for logging.
func loadImage(ctx context.Context, cmd *cobra.Command, args []string) (context.Context, *pgm.Image, error) {
	uri, _ := cmd.Flags().GetString("uri")
	if uri == "" && len(args) > 0 {
		uri = args[0]
	}
	uri = strings.TrimPrefix(uri, "file://")
	if uri == "" {
		return ctx, nil, fmt.Errorf("raster path is required. Use --uri flag or provide as argument")
	}

	var img *pgm.Image
	var err error
	switch {
	case uri == "-":
		img, err = pgm.Decode(cmd.InOrStdin())
	case strings.HasPrefix(uri, "http"):
		img, err = fetchImage(ctx, uri)
	default:
		img, err = pgm.ReadFile(uri)
	}
	if err != nil {
		return ctx, nil, err
	}

	ctx = logging.AppendCtx(ctx, slog.Group("image",
		slog.String("source", uri),
		slog.String("id", imageID(img)),
	))
	slog.DebugContext(ctx, "Loaded raster", "width", img.Width, "height", img.Height, "levels", img.MaxLevel)
	return ctx, img, nil
}

func fetchImage(ctx context.Context, uri string) (*pgm.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download: %s", resp.Status)
	}
	return pgm.Decode(resp.Body)
}

// writeImage writes img as P2 to the --out destination.
func writeImage(ctx context.Context, cmd *cobra.Command, img *pgm.Image) error {
	out, _ := cmd.Flags().GetString("out")
	if out == "" || out == "-" {
		_, err := pgm.Encode(cmd.OutOrStdout(), img)
		return err
	}
	n, err := pgm.WriteFile(out, img)
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "Wrote raster", "path", out, "bytes", n, "id", imageID(img))
	return nil
}

// imageID fingerprints the current pixels and level count.
func imageID(img *pgm.Image) string {
	var buf bytes.Buffer
	if _, err := pgm.Encode(&buf, img); err != nil {
		return ""
	}
	return util.ContentUUID(buf.Bytes())
}
