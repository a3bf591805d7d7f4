package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DougPeron/backend-agendamento-firebase/internal/app"
	"github.com/DougPeron/backend-agendamento-firebase/internal/auth"
	"github.com/DougPeron/backend-agendamento-firebase/internal/clock"
	"github.com/DougPeron/backend-agendamento-firebase/internal/config"
	"github.com/DougPeron/backend-agendamento-firebase/internal/storage/postgres"
	transporthttp "github.com/DougPeron/backend-agendamento-firebase/internal/transport/http"
	"github.com/DougPeron/backend-agendamento-firebase/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := log.Default()

	cfg, err := config.LoadWithFile(".env")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect to db: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		log.Fatalf("db ping: %v", err)
	}
	if err := migrations.Apply(startupCtx, pool); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	bookingRepo := postgres.NewBookingRepository(pool)
	bookingSvc := app.NewBookingService(bookingRepo, clock.NewSystem())
	courtRepo := postgres.NewCourtRepository(pool)
	courtSvc := app.NewCourtService(courtRepo, clock.NewSystem())
	verifier := auth.NewHS256Verifier(cfg.JWTSecret)

	handler := transporthttp.NewRouter(bookingSvc, courtSvc, verifier, logger, cfg.CORSOrigins)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	log.Printf("api listening on :%s", cfg.Port)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server error: %v", err)
		}
	case <-stopCtx.Done():
		log.Printf("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("server shutdown error: %v", err)
	}
	log.Printf("server stopped")
}
