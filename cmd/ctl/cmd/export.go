package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jpfielding/pgm.go/pkg/export"
	"github.com/jpfielding/pgm.go/pkg/recipe"
	"github.com/spf13/cobra"
)

// NewExportCmd writes a raster in a display format
func NewExportCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [raster]",
		Short: "write a raster as PNG, BMP or TIFF",
		Long:  "Scales the raster's levels onto 8 bits and writes a display image, optionally after a recipe and with integer upscaling.",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				return fmt.Errorf("output path is required. Use --out flag")
			}
			format, _ := cmd.Flags().GetString("format")
			scale, _ := cmd.Flags().GetInt("scale")

			ctx, img, err := loadImage(ctx, cmd, args)
			if err != nil {
				return err
			}
			if path, _ := cmd.Flags().GetString("recipe"); path != "" {
				rc, err := recipe.Load(path)
				if err != nil {
					return err
				}
				if err := rc.Apply(ctx, img); err != nil {
					return err
				}
			}
			if err := export.WriteFile(out, img, export.Options{Format: export.Format(format), Scale: scale}); err != nil {
				return err
			}
			slog.InfoContext(ctx, "Exported raster", "path", out, "scale", scale)
			return nil
		},
	}
	addInputFlags(cmd)
	pf := cmd.PersistentFlags()
	pf.StringP("out", "o", "", "output image path")
	pf.StringP("format", "f", "", "png|bmp|tiff (default: from --out extension)")
	pf.Int("scale", 1, "integer upscaling factor")
	pf.StringP("recipe", "r", "", "optional YAML recipe applied before export")
	return cmd
}
