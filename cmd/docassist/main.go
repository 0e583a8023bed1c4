// Command docassist drafts markdown documents from gathered context and
// generates images from prompts.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

type globalFlags struct {
	configPath string
	verbose    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	rootCmd := &cobra.Command{
		Use:           "docassist",
		Short:         "docassist - context-augmented document and image assistant",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default: ~/.docassist/config.yaml, ./.docassist/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(generateCmd(flags))
	rootCmd.AddCommand(imageCmd(flags))
	rootCmd.AddCommand(contextCmd(flags))
	rootCmd.AddCommand(keyCmd(flags))
	rootCmd.AddCommand(serveCmd(flags))
	rootCmd.AddCommand(configCmd(flags))

	return rootCmd
}
