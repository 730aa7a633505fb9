package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generate, fill, openapi and geo endpoints over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := a.engine(cmd)
			if err != nil {
				return err
			}
			srv, err := engine.Server()
			if err != nil {
				return err
			}
			cfg := a.config.Server
			a.logger.Info("starting server",
				zap.String("addr", cfg.Addr),
				zap.String("geo", cfg.GeoRoutePath),
			)
			return srv.ListenAndServe(cmd.Context(), cfg.Addr, cfg.ReadTimeout, cfg.WriteTimeout)
		},
	}
	cmd.Flags().StringVar(&a.addr, "addr", "", "Listen address (overrides the config)")
	return cmd
}
