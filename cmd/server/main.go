package main

import (
	"context"
	"log"
	"strconv"
	"time"

	"firebase.google.com/go/v4/messaging"
	"github.com/iryspinter/backend/internal/repositories"
	"github.com/iryspinter/backend/internal/router"
	"github.com/iryspinter/backend/internal/sweeper"
	"github.com/iryspinter/backend/pkg/config"
	"github.com/iryspinter/backend/pkg/firebase"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Initialize Firebase messaging for push delivery; optional
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var messagingClient *messaging.Client
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		messagingClient = firebaseApp.MessagingClient
	} else {
		log.Println("Firebase credentials not configured, push delivery disabled.")
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, db.Mongo, messagingClient)

	// Periodic listing expiration sweep
	interval, err := strconv.Atoi(cfg.SweepIntervalMinutes)
	if err != nil || interval < 1 {
		interval = 5
	}
	pinRepo := repositories.NewMongoPinRepository(db.Mongo.Database("iryspinter"))
	go sweeper.New(pinRepo, time.Duration(interval)*time.Minute).Run(ctx)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
