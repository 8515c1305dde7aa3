package router

import (
	"log"

	"firebase.google.com/go/v4/messaging"
	"github.com/iryspinter/backend/internal/handlers"
	"github.com/iryspinter/backend/internal/models"
	"github.com/iryspinter/backend/internal/notifier"
	"github.com/iryspinter/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies.
// messagingClient may be nil, which disables push delivery.
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, messagingClient *messaging.Client) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Like{},
		&models.Comment{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.GET("/api", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"message": "IrysPinter API - Decentralized Pinterest on Ethereum/Arbitrum"})
	})

	// --- Initialize Repositories ---
	pinRepo := repositories.NewMongoPinRepository(mgClient.Database("iryspinter"))
	likeRepo := repositories.NewPostgresLikeRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)
	userRepo := repositories.NewPostgresUserRepository(pgdb)

	// Notification fan-out shared by the pin, like and comment handlers
	n := notifier.New(notificationRepo, userRepo, messagingClient)

	api := e.Group("/api")

	// Pin lifecycle routes
	pinHandler := handlers.NewPinHandler(pinRepo, likeRepo, commentRepo, n)
	pinHandler.RegisterPinRoutes(api)
	log.Println("Pin routes configured.")

	// Like routes
	likeHandler := handlers.NewLikeHandler(likeRepo, pinRepo, n)
	likeHandler.RegisterLikeRoutes(api)
	log.Println("Like routes configured.")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(commentRepo, pinRepo, n)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationRepo, n)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	// User profile routes
	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterUserRoutes(api)
	log.Println("User routes configured.")

	log.Println("All routes configured.")
}
