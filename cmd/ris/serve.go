package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Zuo-Peng/ris/internal/server"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analyzer over HTTP",
		Long: `Endpoints:
  GET  /healthz
  GET  /api/lexicon
  POST /api/analyze   JSON {yourName, theirName, transcript} or multipart yourName, theirName, file`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = a.cfg.Server.Addr
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			h := server.New(a.analyzer, a.loader, a.cfg.Lexicon, a.log)
			a.log.WithField("addr", addr).Info("listening")
			return server.Run(ctx, addr, server.NewRouter(h))
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default server.addr from config)")

	return cmd
}
