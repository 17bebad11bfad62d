package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"imgframe/configs"
	"imgframe/contracts"
	"imgframe/framer"
)

func newLogoCmd() *cobra.Command {
	var flags contracts.LogoFlags

	cmd := &cobra.Command{
		Use:   "logo <input> <output> [padding]",
		Short: "Crop a logo to its content and centre it on a white square",
		Long: `Crop an image to the bounding box of its non-background pixels, pad it,
and centre the result on a white square canvas. Input may be a directory, in
which case output is a directory too.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.Padding = configs.DefaultPadding
			if len(args) == 3 {
				p, err := strconv.Atoi(args[2])
				if err != nil || p < 0 {
					return fmt.Errorf("invalid padding %q: must be a non-negative integer", args[2])
				}
				flags.Padding = p
			}
			return runLogo(cmd, args[0], args[1], flags)
		},
	}

	cmd.Flags().IntVarP(&flags.Threshold, "threshold", "t", configs.DefaultThreshold, "Channel value below which a pixel counts as content (0-255)")
	cmd.Flags().StringVarP(&flags.Background, "background", "b", "threshold", "Background detection: threshold, alpha or otsu")
	addOutputFlags(cmd, &flags.Quality, &flags.Workers, &flags.Format)
	return cmd
}

func runLogo(cmd *cobra.Command, input, output string, flags contracts.LogoFlags) error {
	rule, err := backgroundRule(flags.Background, flags.Threshold)
	if err != nil {
		return err
	}
	f := framer.ContentFramer{Padding: flags.Padding, Rule: rule}
	return runFrame(cmd, input, output, f, outputOptions{
		Quality: flags.Quality,
		Workers: flags.Workers,
		Format:  flags.Format,
	})
}

func backgroundRule(name string, threshold int) (framer.BackgroundRule, error) {
	if threshold < 0 || threshold > 255 {
		return nil, fmt.Errorf("invalid threshold %d: must be between 0 and 255", threshold)
	}
	switch name {
	case "threshold":
		return framer.Fixed(framer.Threshold(uint8(threshold))), nil
	case "alpha":
		return framer.Fixed(framer.Alpha(framer.DefaultAlphaCutoff)), nil
	case "otsu":
		return framer.Otsu, nil
	}
	return nil, fmt.Errorf("invalid background mode %q (use threshold, alpha or otsu)", name)
}
