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

	shutdown := observability.Setup("onboarding-service")
	defer shutdown(context.Background())

	accessVerifier, err := auth.NewVerifier(cfg.JWTSecret)
	if err != nil {
		log.Fatalf("failed to build access verifier: %v", err)
	}

	repo := memory.NewOnboardingRepository()
	svc := service.NewOnboardingService(repo)
	router := api.NewOnboardingRouter(handler.NewOnboardingHandler(svc), accessVerifier)

	server := &http.Server{
		Addr:    cfg.OnboardingAddr,
		Handler: router,
	}
	go func() {
		slog.Info("starting onboarding service", "addr", cfg.OnboardingAddr)
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
	slog.Info("onboarding service stopped")
}
