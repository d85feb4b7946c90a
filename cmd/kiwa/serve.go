package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Xnn511/kiwa/internal/bootstrap"
	"github.com/Xnn511/kiwa/internal/handlers"
	"github.com/Xnn511/kiwa/internal/httpserver"
	"github.com/Xnn511/kiwa/internal/platform/observability"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if port != "" {
				if root.overrides == nil {
					root.overrides = map[string]any{}
				}
				root.overrides["server.port"] = port
			}
			return runServe(cmd, root)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides server.port)")
	return cmd
}

func runServe(cmd *cobra.Command, root *rootOptions) error {
	cfg, err := root.load(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	baseLogger, err := observability.NewLogger(cfg.Logging.Level, cfg.Logging.Format, cfg.Telemetry.ServiceName)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()
	logger := baseLogger.Named("kiwa")

	c, err := bootstrap.Open(cfg)
	if err != nil {
		return fmt.Errorf("open content: %w", err)
	}
	if report := c.Check(); !report.OK() {
		logger.Warn("content is incomplete",
			zap.Any("unknown_tags", report.UnknownTags),
			zap.Any("missing_messages", report.Missing),
		)
	}

	server, err := httpserver.New(httpserver.Config{
		Address:      cfg.Server.Addr(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		Site:         handlers.Site{Name: cfg.Site.Name, BaseURL: cfg.Site.BaseURL, Currency: cfg.Site.Currency},
		Engine:       c.Engine,
		Bundle:       c.Bundle,
		Templates:    c.Templates,
		Static:       c.Static,
		Logger:       logger,
		ProjectID:    cfg.Telemetry.ProjectID,
	})
	if err != nil {
		return fmt.Errorf("build server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverLogger := logger.Named("http").With(zap.String("addr", server.Addr))
	errCh := make(chan error, 1)
	go func() {
		serverLogger.Info("kiwa listening", zap.Int("items", len(c.Store.Items())), zap.Strings("locales", c.Bundle.Supported()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	logger.Info("shutdown signal received; draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		return err
	}
	return nil
}
