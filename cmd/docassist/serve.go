package main

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Protocol-Lattice/docassist/internal/web"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the JSON API",
		Long: `Start the docassist HTTP API.

Examples:
  docassist serve
  docassist serve --addr :9000`,
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
			if addr == "" {
				addr = a.cfg.Server.Addr
			}
			if !flags.verbose {
				gin.SetMode(gin.ReleaseMode)
			}
			return web.NewServer(asst, a.store, a.logger, a.cfg.Server.MaxInflight).Run(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from server.addr)")
	return cmd
}
