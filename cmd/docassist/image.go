package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Protocol-Lattice/docassist/pkg/models"
)

func imageCmd(flags *globalFlags) *cobra.Command {
	var (
		prompt string
		out    string
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "image",
		Short: "Generate an image from a prompt",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer a.close()

			asst, err := a.assistant()
			if err != nil {
				return err
			}

			res, err := asst.GenerateImage(a.context(cmd.Context()), prompt)
			var noImg *models.NoImageProducedError
			if errors.As(err, &noImg) && noImg.Text != "" {
				fmt.Fprintln(cmd.OutOrStdout(), noImg.Text)
			}
			if err != nil {
				return err
			}

			mimeType, data, err := models.DecodeDataURI(res.ImageDataURI)
			if err != nil {
				return err
			}
			if out == "" {
				out = imageFileName("generated", mimeType)
			}
			path, err := writeOutput(data, imageFileName("image", mimeType), out, outDir)
			if err != nil {
				return fmt.Errorf("write image: %w", err)
			}
			if res.Text != "" {
				fmt.Fprintln(cmd.OutOrStdout(), res.Text)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Image written to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "image prompt")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default generated.<ext>)")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "write a timestamped file into this directory instead of --out")

	return cmd
}
