package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"pixeld/internal/common/fsutil"
	"pixeld/internal/manager"
	"pixeld/internal/raster"
)

func buildProcessCmd(o *options) *cobra.Command {
	var maskPath string
	cmd := &cobra.Command{
		Use:   "process <model> <input> <output.png>",
		Short: "Run one model over a local image file",
		Example: "  pixeld process denoising noisy.jpg clean.png\n" +
			"  pixeld process inpainting photo.png out.png --mask mask.png\n" +
			"  pixeld process superresolution small.bmp sharp.png --divisor 32",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, o)
			if err != nil {
				return err
			}
			log := newLogger(cfg, cmd.ErrOrStderr())
			var mask image.Image
			if maskPath != "" {
				if mask, err = decodeFile(maskPath); err != nil {
					return fmt.Errorf("mask: %w", err)
				}
			}
			mgr := manager.NewWithConfig(manager.ManagerConfig{Logger: &log})
			res, err := processFile(cmd.Context(), log, mgr, args[0], args[1], args[2], mask, cfg.DefaultDivisor)
			if err != nil {
				return err
			}
			b := res.Bounds()
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d, %s)\n", args[2], b.Dx(), b.Dy(), raster.ModeOf(res))
			return nil
		},
	}
	cmd.Flags().StringVar(&maskPath, "mask", "", "Mask image for inpainting (255 erases, 0 keeps)")
	return cmd
}

// processFile decodes in, optionally crops it, runs model and writes the
// PNG result to out.
func processFile(ctx context.Context, log zerolog.Logger, mgr *manager.Manager, model, in, out string, mask image.Image, divisor int) (image.Image, error) {
	img, err := decodeFile(in)
	if err != nil {
		return nil, err
	}
	if divisor > 0 {
		if img, err = raster.CropToMultiple(img, divisor); err != nil {
			return nil, fmt.Errorf("%s: %w", in, err)
		}
	}
	res, err := mgr.Process(ctx, model, img, mask)
	if err != nil {
		if tb := manager.Traceback(err); tb != "" {
			log.Debug().Str("stack", tb).Msg("traceback")
		}
		return nil, err
	}
	var buf bytes.Buffer
	if err := raster.EncodePNG(&buf, res); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	if err := fsutil.WriteFileAtomic(out, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", out, err)
	}
	return res, nil
}

func decodeFile(path string) (image.Image, error) {
	path, err := fsutil.ExpandHome(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := raster.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

func buildModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List available models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tMASK\tAVAILABLE\tDESCRIPTION")
			for _, m := range manager.New().ListModels() {
				fmt.Fprintf(tw, "%s\t%v\t%v\t%s\n", m.ID, m.AcceptsMask, m.Available, m.Description)
			}
			return tw.Flush()
		},
	}
}
