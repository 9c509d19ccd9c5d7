package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"pasar/internal/handlers"
	"pasar/internal/middleware"
	"pasar/internal/models"
	"pasar/internal/repositories"
	"pasar/internal/services"
	"pasar/pkg/mailer"
	"pasar/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DSN", "")    // Postgres DSN; empty means local SQLite
	viper.SetDefault("SQLITE_PATH", "pasar.db")
	viper.SetDefault("REDIS_ADDR", "")      // empty means in-memory sessions
	viper.SetDefault("RABBITMQ_URL", "")    // empty means no event publishing
	viper.SetDefault("JWT_SECRET", "change-me")
	viper.SetDefault("SESSION_TTL_MINUTES", 15)
	viper.SetDefault("SMTP_HOST", "") // empty means log-only mail
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_USERNAME", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("SMTP_FROM", "no-reply@pasar.local")
	viper.AutomaticEnv() // Load environment variables

	appPort := viper.GetString("APP_PORT")
	sessionTTL := time.Duration(viper.GetInt("SESSION_TTL_MINUTES")) * time.Minute

	// --- Database ---
	db, err := openDatabase()
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.VendorProfile{}, &models.Product{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Registration session store ---
	var sessions repositories.SessionStore
	if redisAddr := viper.GetString("REDIS_ADDR"); redisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis at %s: %v", redisAddr, err)
		}
		defer redisClient.Close()
		sessions = repositories.NewRedisSessionStore(redisClient)
	} else {
		log.Println("REDIS_ADDR not set, keeping registration sessions in memory")
		sessions = repositories.NewMockSessionStore()
	}

	// --- Mailer ---
	var mail mailer.Mailer
	if smtpHost := viper.GetString("SMTP_HOST"); smtpHost != "" {
		mail = mailer.NewSMTPMailer(
			smtpHost,
			viper.GetInt("SMTP_PORT"),
			viper.GetString("SMTP_USERNAME"),
			viper.GetString("SMTP_PASSWORD"),
			viper.GetString("SMTP_FROM"),
		)
	} else {
		mail = mailer.NewLogMailer()
	}

	// --- RabbitMQ (optional) ---
	var mqClient *rabbitmq.Client
	if mqURL := viper.GetString("RABBITMQ_URL"); mqURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: mqURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close() // Ensure the connection is closed on exit
	} else {
		log.Println("RABBITMQ_URL not set, vendor events will not be published")
	}

	// --- Initialize Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	vendorRepo := repositories.NewGORMVendorRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo, viper.GetString("JWT_SECRET"))
	registrationService := services.NewRegistrationService(userRepo, sessions, mail, sessionTTL)
	vendorService := services.NewVendorService(vendorRepo, userRepo, mail, mqClient)
	productService := services.NewProductService(productRepo, vendorRepo, mqClient)

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(authService, registrationService)
	vendorHandler := handlers.NewVendorHandler(vendorService)
	productHandler := handlers.NewProductHandler(productService)
	adminHandler := handlers.NewAdminHandler(vendorService, productService)

	// --- Initialize Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.New()) // Request logger

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")

	// Public routes
	authHandler.RegisterRoutes(apiV1)
	productHandler.RegisterPublicRoutes(apiV1)

	// Authenticated vendor routes
	protected := apiV1.Group("", middleware.AuthRequired(authService))
	vendorHandler.RegisterRoutes(protected)
	productHandler.RegisterVendorRoutes(protected)

	// Admin routes
	adminOnly := protected.Group("", middleware.AdminRequired())
	adminHandler.RegisterRoutes(adminOnly)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start RabbitMQ Consumer in a Goroutine ---
	// The consumer mirrors what downstream systems would do with lifecycle
	// events; here it just records them.
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for vendor events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received Vendor Event (Tag: %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil // Return nil to acknowledge
			}
			if consumerErr := mqClient.ConsumeVendorEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// openDatabase connects to Postgres when a DSN is configured and falls back
// to a local SQLite file otherwise.
func openDatabase() (*gorm.DB, error) {
	if dsn := viper.GetString("DATABASE_DSN"); dsn != "" {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(viper.GetString("SQLITE_PATH")), &gorm.Config{})
}
