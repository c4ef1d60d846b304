package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	swagger "github.com/gofiber/swagger"
	"github.com/google/uuid"
	"github.com/localnerve/movieweb/internal/config"
	"github.com/localnerve/movieweb/internal/database"
	"github.com/localnerve/movieweb/internal/handlers"
	"github.com/localnerve/movieweb/internal/omdb"
	"github.com/localnerve/movieweb/internal/services"

	_ "github.com/localnerve/movieweb/docs/api" // Swagger docs
)

// @title MovieWeb API
// @version 1.0.0
// @description Users and the movies they like, with OMDb lookups

// @contact.name API Support
// @contact.url https://github.com/localnerve/movieweb
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:5000
// @BasePath /
// @schemes http https

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	dm := services.NewSQLDataManager(db)
	lookup := newLookup(cfg)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
		AppName:      handlers.AppTitle,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("movieweb")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		result := services.HealthCheck(c.UserContext(), cfg, db)
		status := fiber.StatusOK
		if result.Status == "unhealthy" {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(result)
	})

	handlers.RegisterRoutes(app, dm, lookup)

	// 404 handler
	app.Use(handlers.NotFound)

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// newLookup builds the OMDb client, with a Redis cache when REDIS_ADDR is set and reachable
func newLookup(cfg *config.Config) *omdb.Client {
	opts := omdb.Options{
		BaseURL:           cfg.OMDbURL,
		Timeout:           cfg.OMDbTimeout,
		RequestsPerSecond: cfg.OMDbRateLimit,
		Burst:             cfg.OMDbBurst,
		CacheTTL:          cfg.OMDbCacheTTL,
	}

	if cfg.RedisAddr != "" {
		rdb, err := omdb.NewRedisClient(context.Background(), cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Printf("OMDb cache disabled: %v", err)
		} else {
			opts.Cache = omdb.NewRedisCache(rdb, "movieweb:omdb")
			log.Printf("OMDb cache enabled on redis %s", cfg.RedisAddr)
		}
	}

	client := omdb.NewClient(cfg.OMDbAPIKey, opts)
	if !client.Configured() {
		log.Printf("OMDB_API_KEY not set, movie lookups are disabled")
	}
	return client
}
