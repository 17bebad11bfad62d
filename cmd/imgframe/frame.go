package main

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"imgframe/batch"
	"imgframe/codec"
	"imgframe/configs"
	"imgframe/contracts"
)

type outputOptions struct {
	Quality int
	Workers int
	Format  string
}

func addOutputFlags(cmd *cobra.Command, quality, workers *int, format *string) {
	cmd.Flags().IntVarP(quality, "quality", "q", configs.DefaultJPEGQuality, "JPEG quality (1-100)")
	cmd.Flags().IntVarP(workers, "workers", "j", configs.DefaultWorkers(), "Parallel images when the input is a directory")
	cmd.Flags().StringVarP(format, "format", "f", "", "Output format for directory input: png, jpg, tiff, bmp, gif or pdf (default: same as input)")
}

// runFrame applies f to input, which is either an image file or a directory
// of images, and writes the result(s) to output.
func runFrame(cmd *cobra.Command, input, output string, f contracts.Framer, opts outputOptions) error {
	if opts.Quality < 1 || opts.Quality > 100 {
		return fmt.Errorf("invalid quality %d: must be between 1 and 100", opts.Quality)
	}
	ext := ""
	if opts.Format != "" {
		format, err := codec.ParseFormat(opts.Format)
		if err != nil {
			return err
		}
		ext = string(format)
		if format == codec.JPEG {
			ext = "jpg"
		}
	}

	jobs, err := batch.PlanJobs(input, output, ext)
	if err != nil {
		return err
	}

	startTime := time.Now()
	results := batch.Run(jobs, opts.Workers, func(job contracts.ImageJob) (*contracts.FrameResult, error) {
		// one unsupported output only fails its own job
		if _, err := codec.FormatFromPath(job.Output); err != nil {
			return nil, fmt.Errorf("%s: %w", job.Output, err)
		}
		src, err := codec.Open(job.Input)
		if err != nil {
			return nil, err
		}
		res, err := f.Frame(src.Image)
		if err != nil {
			return nil, err
		}
		if err := codec.Save(job.Output, res.Image, codec.EncodeOptions{Quality: opts.Quality, DPI: src.DPI}); err != nil {
			return nil, fmt.Errorf("error saving %s: %w", job.Output, err)
		}
		return res, nil
	})

	out := cmd.OutOrStdout()
	for _, r := range results {
		if r.Err == nil {
			fmt.Fprintf(out, "%s -> %s: %s\n", r.Job.Input, r.Job.Output, r.Summary)
		}
	}

	if len(results) == 1 {
		return results[0].Err
	}
	logrus.Infof("Framed %d images in %s", len(results), time.Since(startTime).Round(time.Millisecond))
	if failed := batch.Failed(results); failed > 0 {
		return fmt.Errorf("%d of %d images failed", failed, len(results))
	}
	return nil
}
