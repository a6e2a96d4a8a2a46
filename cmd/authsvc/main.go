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

	"github.com/guardianlab/guardian/internal/api"
	"github.com/guardianlab/guardian/internal/config"
	"github.com/guardianlab/guardian/internal/handler"
	"github.com/guardianlab/guardian/internal/infrastructure/auth"
	"github.com/guardianlab/guardian/internal/infrastructure/observability"
	"github.com/guardianlab/guardian/internal/repository/memory"
	service "github.com/guardianlab/guardian/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	shutdown := observability.Setup("auth-service")
	defer shutdown(context.Background())

	userRepo, err := memory.NewUserRepository()
	if err != nil {
		log.Fatalf("failed to seed users: %v", err)
	}

	issuer, err := auth.NewIssuer(auth.IssuerConfig{
		AccessSecret:  cfg.JWTSecret,
		RefreshSecret: cfg.JWTRefreshSecret,
		AccessTTL:     cfg.AccessTokenTTL,
		RefreshTTL:    cfg.RefreshTokenTTL,
	})
	if err != nil {
		log.Fatalf("failed to build token issuer: %v", err)
	}
	refreshVerifier, err := auth.NewVerifier(cfg.JWTRefreshSecret)
	if err != nil {
		log.Fatalf("failed to build refresh verifier: %v", err)
	}

	svc := service.NewAuthService(userRepo, issuer, refreshVerifier)
	router := api.NewAuthRouter(handler.NewAuthHandler(svc))

	server := &http.Server{
		Addr:    cfg.AuthAddr,
		Handler: router,
	}
	go func() {
		slog.Info("starting auth service", "addr", cfg.AuthAddr)
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
	slog.Info("auth service stopped")
}
