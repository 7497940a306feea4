// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package commands

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"jotpress/internal/cache"
	"jotpress/internal/config"
	"jotpress/internal/handlers"
	"jotpress/internal/router"
	"jotpress/internal/session"
	"jotpress/internal/store"
)

// serveCmd runs the HTTP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the JotPress server",
	Long: `Run the JotPress server: loads configuration from the environment,
opens the content document, and serves the read and write APIs until
interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe() error {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"data_file", cfg.DataFile,
	)

	// Open the content document. The store owns the single writer
	// goroutine for the whole process lifetime.
	st, err := store.Open(cfg.DataFile)
	if err != nil {
		return err
	}
	defer st.Close()

	// Connect to Valkey if configured. The server runs without it, the
	// read endpoints just skip the cache.
	var views *cache.ViewCache
	if cfg.CacheEnabled() {
		client, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			return err
		}
		defer client.Close()
		views = cache.NewViewCache(client, cache.DefaultViewTTL)
	} else {
		slog.Warn("valkey not configured, view cache disabled")
	}

	sessionStore := session.NewStore(session.DefaultTTL)

	r := router.New(sessionStore,
		handlers.NewAuth(cfg, sessionStore),
		handlers.NewAdmin(st, views),
		handlers.NewPublic(cfg, st, views),
	)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig)
	}

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	slog.Info("server stopped gracefully")
	return nil
}
