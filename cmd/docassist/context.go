package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func contextCmd(flags *globalFlags) *cobra.Command {
	var (
		urls     []string
		urlsFile string
		files    []string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "context",
		Short: "Gather context from URLs and files and print it",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer a.close()

			urlList, err := collectURLs(urls, urlsFile)
			if err != nil {
				return err
			}
			b := a.aggregator().Aggregate(a.context(cmd.Context()), urlList, filesFromPaths(files))

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{
					"context": b.Text(),
					"entries": b.Entries,
					"errors":  b.Messages(),
				})
			}
			printSourceErrors(cmd.ErrOrStderr(), b)
			fmt.Fprint(cmd.OutOrStdout(), b.Text())
			if b.HasContent() {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&urls, "url", nil, "reference URL (repeatable)")
	cmd.Flags().StringVar(&urlsFile, "urls-file", "", "file with one URL per line (- for stdin)")
	cmd.Flags().StringArrayVarP(&files, "file", "f", nil, "reference file (repeatable)")
	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "output as JSON")

	return cmd
}
