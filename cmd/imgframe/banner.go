package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"imgframe/contracts"
	"imgframe/framer"
)

func newBannerCmd() *cobra.Command {
	var flags contracts.BannerFlags

	cmd := &cobra.Command{
		Use:   "banner <input> <output> (--ratio W:H | --size WxH)",
		Short: "Crop the largest centred region of an aspect ratio, optionally resizing it",
		Example: `  imgframe banner hero.png banner.png --ratio 2:1 --width 1280
  imgframe banner hero.png og.jpg --size 1200x630`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := bannerOptions(flags)
			if err != nil {
				return err
			}
			return runFrame(cmd, args[0], args[1], framer.BannerFramer{Options: opts}, outputOptions{
				Quality: flags.Quality,
				Workers: flags.Workers,
				Format:  flags.Format,
			})
		},
	}

	cmd.Flags().StringVarP(&flags.Ratio, "ratio", "r", "", "Target aspect ratio, e.g. 2:1 or 16:9")
	cmd.Flags().StringVarP(&flags.Size, "size", "s", "", "Target size, e.g. 1280x640 (crop to its ratio, then resize)")
	cmd.Flags().IntVarP(&flags.Width, "width", "W", 0, "Resize to this width, keeping the ratio")
	cmd.Flags().IntVarP(&flags.Height, "height", "H", 0, "Resize to this height, keeping the ratio")
	cmd.Flags().StringVar(&flags.Filter, "filter", "lanczos", "Resampling filter: lanczos, catmullrom, linear or box")
	addOutputFlags(cmd, &flags.Quality, &flags.Workers, &flags.Format)
	return cmd
}

// bannerOptions validates the flags. Nothing is read before this succeeds.
func bannerOptions(flags contracts.BannerFlags) (framer.BannerOptions, error) {
	var opts framer.BannerOptions

	switch {
	case flags.Ratio == "" && flags.Size == "":
		return opts, errors.New("one of --ratio W:H or --size WxH is required")
	case flags.Ratio != "" && flags.Size != "":
		return opts, errors.New("--ratio and --size are mutually exclusive")
	}
	if flags.Width < 0 || flags.Height < 0 {
		return opts, fmt.Errorf("invalid target size %dx%d: dimensions must be positive", flags.Width, flags.Height)
	}

	if flags.Size != "" {
		if flags.Width != 0 || flags.Height != 0 {
			return opts, errors.New("--width and --height cannot be combined with --size")
		}
		size, err := framer.ParseSize(flags.Size)
		if err != nil {
			return opts, err
		}
		opts.Ratio = size.Ratio()
		opts.Resize = framer.ResizeSpec{Width: size.Width, Height: size.Height}
	} else {
		r, err := framer.ParseRatio(flags.Ratio)
		if err != nil {
			return opts, err
		}
		opts.Ratio = r
		opts.Resize = framer.ResizeSpec{Width: flags.Width, Height: flags.Height}
	}

	filter, err := framer.ParseFilter(flags.Filter)
	if err != nil {
		return opts, err
	}
	opts.Filter = filter
	return opts, nil
}
