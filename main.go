package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/DragonEmporer001/fiverr-clone/internal/auth"
	"github.com/DragonEmporer001/fiverr-clone/internal/config"
	"github.com/DragonEmporer001/fiverr-clone/internal/hub"
	"github.com/DragonEmporer001/fiverr-clone/internal/policy"
	"github.com/DragonEmporer001/fiverr-clone/internal/service"
	"github.com/DragonEmporer001/fiverr-clone/internal/store"
	transporthttp "github.com/DragonEmporer001/fiverr-clone/internal/transport/http"
)

func main() {
	// Load configuration
	config.LoadDotEnv()
	cfg := config.Load()

	log.Printf("Starting conversation service...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Log level: %s", cfg.LogLevel)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Initialize store
	db, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer db.Close()
	if store.IsPostgresDSN(cfg.DatabaseURL) {
		log.Printf("Database: postgres")
	} else {
		log.Printf("Database: %s", cfg.DatabaseURL)
	}

	// Initialize policy engine
	policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		log.Fatalf("Failed to initialize policy engine: %v", err)
	}

	// Initialize realtime hub
	h := hub.New()
	go h.Run(ctx)
	stream := hub.NewServer(h, hub.Options{
		PingInterval: cfg.PingInterval,
		WriteTimeout: cfg.WriteTimeout,
		ReadTimeout:  cfg.ReadTimeout,
	})

	// Initialize identity
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	identity := auth.NewIdentity(tokens, cfg.AccessTokenCookie)

	// Initialize service
	svc := service.New(db, policyEngine, h)

	server := transporthttp.NewServer(svc, identity, stream)
	server.Debug = cfg.LogLevel == "debug"

	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("API started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down conversation service...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}
	stop()

	log.Println("Conversation service stopped")
}
