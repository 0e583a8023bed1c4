package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Protocol-Lattice/docassist/pkg/assistant"
)

func generateCmd(flags *globalFlags) *cobra.Command {
	var (
		instruction string
		urls        []string
		urlsFile    string
		files       []string
		out         string
		outDir      string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a markdown document, optionally grounded on URLs and files",
		Long: `Generate a markdown document from an instruction.

Examples:
  docassist generate -p "Write a README for this tool"
  docassist generate -p "Summarise" --url https://example.com --file notes.pdf
  docassist generate -p "Compare" --urls-file links.txt --out-dir ./out`,
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
			asst, err := a.assistant()
			if err != nil {
				return err
			}

			res, err := asst.GenerateDocument(a.context(cmd.Context()), assistant.DocumentRequest{
				Instruction: instruction,
				URLs:        urlList,
				Files:       filesFromPaths(files),
			})
			if err != nil {
				return err
			}
			printSourceErrors(cmd.ErrOrStderr(), res.Context)

			path, err := writeOutput([]byte(res.Document), "generated.md", out, outDir)
			if err != nil {
				return fmt.Errorf("write document: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Document written to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&instruction, "prompt", "p", "", "instruction for the document")
	cmd.Flags().StringArrayVar(&urls, "url", nil, "reference URL (repeatable)")
	cmd.Flags().StringVar(&urlsFile, "urls-file", "", "file with one URL per line (- for stdin)")
	cmd.Flags().StringArrayVarP(&files, "file", "f", nil, "reference file (repeatable)")
	cmd.Flags().StringVarP(&out, "out", "o", "generated.md", "output file")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "write a timestamped file into this directory instead of --out")

	return cmd
}
