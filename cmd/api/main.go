package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-account-api/internal/application/account"
	"github.com/go-account-api/internal/config"
	"github.com/go-account-api/internal/infrastructure/dynamo"
	"github.com/go-account-api/internal/infrastructure/smtp"
	"github.com/go-account-api/internal/metrics"
	transporthttp "github.com/go-account-api/internal/transport/http"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	accountRepo := dynamo.NewAccountRepo(dynamoClient, cfg.DynamoTables.Accounts)
	verificationRepo := dynamo.NewVerificationRepo(dynamoClient, cfg.DynamoTables.Verifications)
	resetRepo := dynamo.NewPasswordResetRepo(dynamoClient, cfg.DynamoTables.PasswordResets)

	// SMTP mailer, constructed here and injected; no global transporter state.
	mailer := smtp.NewMailer(cfg)

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	deps := &transporthttp.Deps{
		AccountRepo:      accountRepo,
		VerificationRepo: verificationRepo,
		ResetRepo:        resetRepo,
		Mailer:           mailer,
		Collector:        collector,
		Gatherer:         registry,
	}

	router := transporthttp.NewRouter(cfg, deps)

	// Reconciliation sweeper for accounts whose verification issuance failed.
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	if cfg.OrphanGracePeriod > 0 {
		sweeper := account.NewSweeper(accountRepo, verificationRepo, cfg.OrphanGracePeriod, cfg.SweepInterval)
		go sweeper.Run(sweepCtx)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	stopSweep()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
