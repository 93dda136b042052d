package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/q-sparc/sparc-chat/internal/adapters/driving/httpapi"
	"github.com/q-sparc/sparc-chat/internal/logger"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build the index and serve the chat API over HTTP",
	Long: `Builds the similarity index from the configured record source and then
serves the chat API until interrupted.

Endpoints:
  POST /chat    {"input": "...", "session_id": "..."}
  GET  /healthz readiness probe`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := buildRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.close()

	addr := rt.cfg.Server.ListenAddr
	if serveAddr != "" {
		addr = serveAddr
	}

	server := httpapi.NewServer(rt.chat, httpapi.Config{
		ListenAddr:        addr,
		RequestsPerSecond: rt.cfg.Server.RequestsPerSecond,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("Shutting down")
		return server.Shutdown(context.Background())
	}
}
