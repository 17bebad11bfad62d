package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"imgframe/configs"
	"imgframe/files_manager"
	"imgframe/remote"
)

func newRemoveBGCmd() *cobra.Command {
	var baseURL string

	cmd := &cobra.Command{
		Use:   "remove-bg <input> <output>",
		Short: "Remove the background with remove.bg and save a transparent PNG",
		Long: fmt.Sprintf(`Send an image to the remove.bg API and save the returned PNG.
Requires the %s environment variable.`, configs.RemoveBGKeyEnv),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := configs.APIKey(configs.RemoveBGKeyEnv)
			if err != nil {
				return err
			}
			return runSubmit(cmd, &remote.RemoveBG{BaseURL: baseURL, APIKey: key}, args[0], args[1])
		},
	}
	cmd.Flags().StringVar(&baseURL, "base-url", configs.RemoveBGBaseURL, "Service base URL")
	cmd.Flags().MarkHidden("base-url")
	return cmd
}

func newVectorizeCmd() *cobra.Command {
	var baseURL string

	cmd := &cobra.Command{
		Use:   "vectorize <input> <output.svg>",
		Short: "Convert a raster image to SVG with the Recraft API",
		Long: fmt.Sprintf(`Send an image to the Recraft vectorize API and save the returned SVG.
Requires the %s environment variable.`, configs.VectorizeKeyEnv),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := configs.APIKey(configs.VectorizeKeyEnv)
			if err != nil {
				return err
			}
			return runSubmit(cmd, &remote.Vectorizer{BaseURL: baseURL, APIKey: key}, args[0], args[1])
		},
	}
	cmd.Flags().StringVar(&baseURL, "base-url", configs.VectorizeBaseURL, "Service base URL")
	cmd.Flags().MarkHidden("base-url")
	return cmd
}

func runSubmit(cmd *cobra.Command, s remote.Submitter, input, output string) error {
	isDir, err := files_manager.CheckInput(input)
	if err != nil {
		return err
	}
	if isDir {
		return fmt.Errorf("%s is a directory, expected an image file", input)
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	startTime := time.Now()
	logrus.Infof("Submitting %s (%.1f KB)", input, float64(len(data))/1024)
	result, err := s.Submit(cmd.Context(), data, input)
	if err != nil {
		return err
	}
	if err := files_manager.WriteFileAtomic(output, result); err != nil {
		return fmt.Errorf("error saving %s: %w", output, err)
	}
	logrus.Debugf("Remote call took %s", time.Since(startTime).Round(time.Millisecond))

	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%.1f KB)\n", output, float64(len(result))/1024)
	return nil
}
