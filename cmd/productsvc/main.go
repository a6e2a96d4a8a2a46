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
	"github.com/guardianlab/guardian/internal/infrastructure/observability"
	"github.com/guardianlab/guardian/internal/repository/memory"
	service "github.com/guardianlab/guardian/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	shutdown := observability.Setup("products-service")
	defer shutdown(context.Background())

	repo := memory.NewProductRepository()
	svc := service.NewProductService(repo)
	router := api.NewProductRouter(handler.NewProductHandler(svc))

	server := &http.Server{
		Addr:    cfg.ProductsAddr,
		Handler: router,
	}
	go func() {
		slog.Info("starting products service", "addr", cfg.ProductsAddr)
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
	slog.Info("products service stopped")
}
