package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"resume-o-matic/internal/bootstrap"
	"resume-o-matic/internal/shared/config"
	"resume-o-matic/internal/shared/server"
	"resume-o-matic/internal/shared/telemetry"
)

var (
	servePort    string
	serveMigrate bool
)

var rootCmd = &cobra.Command{
	Use:          "api",
	Short:        "resume-o-matic HTTP API",
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func init() {
	for _, cmd := range []*cobra.Command{rootCmd, serveCmd} {
		cmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (defaults to PORT)")
		cmd.Flags().BoolVar(&serveMigrate, "migrate", true, "Apply migrations on startup")
	}
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	if err := telemetry.Init(cfg.Env); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer telemetry.Sync()

	if servePort != "" {
		cfg.Port = servePort
	}
	if cmd.Flags().Changed("migrate") {
		cfg.AutoMigrate = serveMigrate
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              server.Addr(cfg.Port),
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		telemetry.Info("server.start", map[string]any{"addr": srv.Addr, "env": cfg.Env, "db_driver": cfg.DBDriver, "llm_backend": cfg.LLMBackend})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	telemetry.Info("server.shutdown", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
