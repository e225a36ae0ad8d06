package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/nikeshboopath-jpg/julius-baer-side-quest/internal/infrastructure/auth"
	"github.com/nikeshboopath-jpg/julius-baer-side-quest/internal/stubserver"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	port := os.Getenv("STUB_PORT")
	if port == "" {
		port = "8123"
	}

	secret := os.Getenv("STUB_JWT_SECRET")
	if secret == "" {
		secret = "stub-secret"
	}

	store := stubserver.NewStore()
	store.Seed("ACC1000", decimal.NewFromFloat(1000.0))
	store.Seed("ACC1001", decimal.NewFromFloat(500.0))

	manager := auth.NewJWTManager(secret, time.Hour)
	handlers := stubserver.NewHandlers(store, manager, "demo", "demo-pass", log.Logger)
	router := stubserver.NewRouter(handlers)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info().Str("port", port).Msg("starting stub account service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
