package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"todo-service/backend/internal/config"
	httpx "todo-service/backend/internal/http"
	"todo-service/backend/internal/tasks"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	store, err := tasks.NewStore(context.Background(), cfg)
	if err != nil {
		log.Fatalf("database connection failed (driver %s): %v", cfg.DBDriver, err)
	}
	defer store.Close()
	log.Printf("connected to %s database", cfg.DBDriver)

	srv := httpx.NewServer(store)
	httpServer := &http.Server{
		Addr:    cfg.Addr(),
		Handler: srv.R,
	}

	go func() {
		log.Printf("server is running on port %s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Printf("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
		_ = httpServer.Close()
	}
	log.Printf("shutdown complete")
}
