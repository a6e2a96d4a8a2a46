package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guardianlab/guardian/internal/config"
	"github.com/guardianlab/guardian/internal/infrastructure/observability"
	"github.com/guardianlab/guardian/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	shutdown := observability.Setup("web-frontend")
	defer shutdown(context.Background())

	sessions := web.NewSessionStore(cfg.Env == "production")
	srv, err := web.NewServer(
		web.NewAuthClient(cfg.AuthServiceURL),
		web.NewProductsClient(cfg.ProductsServiceURL),
		web.NewOnboardingClient(cfg.OnboardingServiceURL),
		sessions,
	)
	if err != nil {
		log.Fatalf("failed to build web server: %v", err)
	}

	server := &http.Server{
		Addr:    cfg.WebAddr,
		Handler: srv.Router(),
	}
	go func() {
		slog.Info("starting web frontend", "addr", cfg.WebAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("server shutdown failed: %v", err)
	}
	slog.Info("web frontend stopped")
}
