package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/after-school-booking/internal/config"
	"github.com/iliyamo/after-school-booking/internal/database"
	"github.com/iliyamo/after-school-booking/internal/handler"
	appmw "github.com/iliyamo/after-school-booking/internal/middleware"
	"github.com/iliyamo/after-school-booking/internal/queue"
	"github.com/iliyamo/after-school-booking/internal/repository"
	"github.com/iliyamo/after-school-booking/internal/router"
	queue_publisher "github.com/iliyamo/after-school-booking/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	// Connect to MongoDB with the configured bounded retry. A failure here
	// is not fatal: the server starts in degraded mode and data endpoints
	// answer 503 until the next restart with a working database.
	var store *database.Mongo
	if cfg.MongoURI == "" {
		log.Println("MONGODB_URI is missing; starting without database")
	} else {
		m, err := database.Open(cfg.MongoURI, cfg.DBName, cfg.ConnectRetries, cfg.ConnectBackoff)
		if err != nil {
			log.Printf("database unavailable: %v; API will return 503", err)
		} else {
			store = m
			log.Println("connected to MongoDB")
		}
	}

	h := &handler.BookingHandler{Publish: queue_publisher.PublishOrderConfirmed}
	if store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := database.SeedIfEmpty(ctx, store.DB); err != nil {
			log.Printf("seed failed: %v", err)
		}
		cancel()

		h.Lessons = repository.NewLessonRepo(store.DB)
		h.Orders = repository.NewOrderRepo(store.DB)
		h.Store = store
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
	}))

	requireDB := appmw.RequireDatabase(func() bool { return store != nil })
	cache := appmw.NewRedisCache(config.LoadCacheConfig(), config.NewRedisClient())
	router.RegisterRoutes(e, h, requireDB, cache)

	// Background consumer mirrors confirmed orders into logs/orders.log.
	go func() {
		if err := queue.StartOrderConsumer(); err != nil {
			log.Printf("order consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
