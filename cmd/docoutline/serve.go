package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dgallion1/docoutline/internal/api"
	"github.com/dgallion1/docoutline/internal/pipeline"
	"github.com/spf13/cobra"
)

func serveCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, closer, err := setup(flags)
			if err != nil {
				return err
			}
			defer closer.Close()
			if err := cfg.ValidateServe(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			ctx := cmd.Context()

			// Initialize pipeline.
			orch := pipeline.NewOrchestrator(cfg.Server, cfg.OutlinePolicy(), log)
			orch.Start(ctx)

			srv := api.NewServer(orch, log, cfg.Server)
			httpServer := &http.Server{
				Addr:         ":" + cfg.Server.Port,
				Handler:      srv,
				ReadTimeout:  30 * time.Second,
				WriteTimeout: 120 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			// Graceful shutdown.
			errCh := make(chan error, 1)
			go func() {
				log.Info("starting docoutline", "port", cfg.Server.Port)
				if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				orch.Stop()
				if err != nil {
					return fmt.Errorf("server error: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			log.Info("shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			err = httpServer.Shutdown(shutdownCtx)
			orch.Stop()
			return err
		},
	}
}
