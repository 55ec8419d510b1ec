package main

import (
	"github.com/spf13/cobra"

	"github.com/aelexs/watchface/internal/domain"
	"github.com/aelexs/watchface/internal/server"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve /face.svg, /face.json and the /ws frame stream",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.HTTPPort = port
			}
			return server.Run(cmd.Context(), server.Params{
				Name:   domain.ServiceName,
				Config: cfg,
			}, nil)
		},
	}
	cmd.Flags().IntVar(&port, "port", 8080, "HTTP port (overrides server.http_port)")
	return cmd
}
