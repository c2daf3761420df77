package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	apihttp "github.com/abhisek/examprep/internal/api/http"
	"github.com/abhisek/examprep/internal/registry"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve exam sessions over a JSON REST API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides EXAMPREP_HTTP_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.HTTP.Addr = addr
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := loadBank(cfg)
	if err != nil {
		return err
	}

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	book, err := openBook(ctx, st, cfg)
	if err != nil {
		return err
	}

	reg, err := registry.New(ctx, registry.Config{
		Source:   b,
		Book:     book,
		Events:   st.EventRepo(),
		Logger:   logger,
		Duration: cfg.Exam.Duration,
	})
	if err != nil {
		return fmt.Errorf("create registry: %w", err)
	}
	defer reg.Close()

	srv := &http.Server{
		Addr: cfg.HTTP.Addr,
		Handler: apihttp.NewRouter(apihttp.Deps{
			Registry:    reg,
			Bank:        b,
			Book:        book,
			Logger:      logger,
			CORSOrigins: cfg.HTTP.CORSOrigins,
			Timeout:     cfg.HTTP.Timeout,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.HTTP.Addr, "db_driver", cfg.DB.Driver, "history", book.Len())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
