package main // Entry point package

import (
	"context" // Context for startup database calls
	"log"     // Logging library
	"time"    // Timeouts for startup tasks

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/tennis-court-booking/internal/booking"    // Scheduling and conflict engine
	"github.com/iliyamo/tennis-court-booking/internal/config"     // Internal config loader
	"github.com/iliyamo/tennis-court-booking/internal/database"   // MySQL connection and migrations
	"github.com/iliyamo/tennis-court-booking/internal/handler"    // HTTP handlers
	"github.com/iliyamo/tennis-court-booking/internal/middleware" // Rate limiting and response cache
	"github.com/iliyamo/tennis-court-booking/internal/queue"      // Background event consumer
	"github.com/iliyamo/tennis-court-booking/internal/repository" // Data access layer
	"github.com/iliyamo/tennis-court-booking/internal/router"     // Internal router setup
)

func main() {
	// Load .env if present; real environments set variables directly.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	// Connect to MySQL and prepare the schema.
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("migrate: %v", err)
	}
	if cfg.SeedCourts {
		if err := database.SeedCourts(ctx, db); err != nil {
			cancel()
			log.Fatalf("seed: %v", err)
		}
	}
	cancel()

	// Redis backs the rate limiter and the response cache; both degrade
	// to pass-through when the client is nil or disabled.
	rdb := config.NewRedisClient()

	// Repositories.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	courts := repository.NewCourtRepo(db)
	schedule := repository.NewScheduleRepo(db)

	// Core scheduling engine shared by the booking, match and
	// availability endpoints.
	sched := booking.NewScheduler(courts, users, schedule, cfg.OpeningTime, cfg.ClosingTime)

	// Handlers.
	authH := handler.NewAuthHandler(cfg, users, tokens)
	courtH := handler.NewCourtHandler(cfg, courts, sched)
	bookingH := handler.NewBookingHandler(sched, schedule, courts)
	matchH := handler.NewMatchHandler(sched, schedule, courts)
	adminH := handler.NewAdminCourtHandler(courts)

	e := echo.New() // Create Echo instance
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, courtH)
	router.RegisterPlayer(e, bookingH, matchH, cfg.JWTSecret)
	router.RegisterAdmin(e, adminH, cfg.JWTSecret)

	// Consume booking.confirmed and match.scheduled events in the
	// background; the consumer reconnects on broker failures.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking-consumer: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
