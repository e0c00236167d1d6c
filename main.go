package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/songurtechnology/wafelinvest/chat"
	"github.com/songurtechnology/wafelinvest/database"
	"github.com/songurtechnology/wafelinvest/models"
	"github.com/songurtechnology/wafelinvest/routes"
	"github.com/songurtechnology/wafelinvest/services"
	"github.com/songurtechnology/wafelinvest/utils"
)

func main() {
	// Load .env if present (do not overwrite already-set environment variables).
	if envMap, err := godotenv.Read(); err == nil {
		for k, v := range envMap {
			if os.Getenv(k) == "" {
				os.Setenv(k, v)
			}
		}
	}

	// Validate required environment variables
	requiredEnvVars := []string{"DB_HOST", "DB_USER", "DB_PASS", "DB_NAME", "JWT_SECRET", "REDIS_URL"}
	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	// Auto-migrate only in development to avoid accidental production schema changes
	if strings.ToLower(os.Getenv("ENV")) == "development" {
		log.Println("Running in development mode - performing auto-migration")
		if err := db.AutoMigrate(
			&models.User{},
			&models.Profile{},
			&models.Package{},
			&models.Investment{},
			&models.PaymentConfirmation{},
			&models.InvestmentSummary{},
			&models.ChatMessage{},
			&models.CryptoWallet{},
			&models.SiteSetting{},
		); err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}
		log.Println("Auto-migration completed successfully")
	} else {
		log.Println("Running in production mode - skipping auto-migration")
	}

	if err := seedAdmin(db); err != nil {
		log.Fatalf("failed to seed admin account: %v", err)
	}

	// Payment proof storage is optional at startup; SubmitPayment fails
	// cleanly when it is not configured.
	var store utils.ObjectStore
	if r2, err := utils.NewR2Store(context.Background()); err != nil {
		log.Printf("[warn] object storage not configured: %v", err)
	} else {
		store = r2
	}

	broker, err := chat.NewRedisBroker(os.Getenv("REDIS_URL"))
	if err != nil {
		log.Fatalf("failed to connect to Redis: %v", err)
	}
	defer broker.Close()

	hub := chat.NewHub(broker)
	ledger := services.NewLedger(db, store)

	router := routes.InitRouter(ledger, hub)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:    ":" + port,
		Handler: router,
		// no Read/WriteTimeout: WebSocket connections are long-lived
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
