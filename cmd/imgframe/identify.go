package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"imgframe/codec"
	"imgframe/configs"
	"imgframe/framer"
	"imgframe/utils"
)

func newIdentifyCmd() *cobra.Command {
	var threshold int

	cmd := &cobra.Command{
		Use:   "identify <file>",
		Short: "Show image size, format, resolution and content bounding box",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if threshold < 0 || threshold > 255 {
				return fmt.Errorf("invalid threshold %d: must be between 0 and 255", threshold)
			}
			return runIdentify(cmd, args[0], uint8(threshold))
		},
	}
	cmd.Flags().IntVarP(&threshold, "threshold", "t", configs.DefaultThreshold, "Channel value below which a pixel counts as content (0-255)")
	return cmd
}

func runIdentify(cmd *cobra.Command, path string, threshold uint8) error {
	src, err := codec.Open(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	b := src.Image.Bounds()
	fmt.Fprintf(out, "File:       %s\n", path)
	fmt.Fprintf(out, "Format:     %s\n", src.Format)
	fmt.Fprintf(out, "Dimensions: %d x %d\n", b.Dx(), b.Dy())
	fmt.Fprintf(out, "File size:  %d bytes (%.1f KB)\n", info.Size(), float64(info.Size())/1024)

	if src.HasDPI {
		fmt.Fprintf(out, "Resolution: %.0f dpi\n", src.DPI)
	} else {
		fmt.Fprintf(out, "Resolution: unknown (assuming %.0f dpi)\n", utils.DefaultDPI)
	}

	r, ok := framer.ContentBounds(src.Image, framer.Threshold(threshold))
	if !ok {
		fmt.Fprintln(out, "Content:    none (uniform image)")
		return nil
	}
	fmt.Fprintf(out, "Content:    %d x %d at (%d,%d)-(%d,%d)\n", r.Dx(), r.Dy(), r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
	return nil
}
