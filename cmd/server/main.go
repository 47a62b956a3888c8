package main

import (
	"cerealdash/internal/api"
	"cerealdash/internal/cache"
	"cerealdash/internal/config"
	"cerealdash/internal/coordinator"
	"cerealdash/internal/engine"
	"cerealdash/internal/tracking"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// 1. Initialize Echo (Starts Instantly)
	e := echo.New()
	e.JSONSerializer = api.SonicSerializer{}
	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	// 2. Optional backends
	statsCache := cache.New(cfg.RedisURL, cfg.RedisPassword, 0)
	defer statsCache.Close()
	if cfg.RedisURL != "" {
		log.Printf("Stats cache backed by redis at %s", cfg.RedisURL)
	}

	observers := []coordinator.Observer{api.MetricsObserver{}}
	if cfg.RabbitURL != "" {
		sender, err := tracking.NewRabbitSender(cfg.RabbitURL, cfg.RabbitPrefix)
		if err != nil {
			log.Printf("Tracking disabled: %v", err)
		} else {
			defer sender.Close()
			tracker := tracking.NewTracker(sender, 0)
			defer tracker.Close()
			observers = append(observers, tracker)
		}
	}

	// 3. Initialize Handler with NIL data
	// The API is live but answers 503 until the dataset is in
	h := api.NewHandler(nil, statsCache, api.Options{ChartWidth: cfg.ChartWidth, ChartHeight: cfg.ChartHeight})
	h.RegisterRoutes(e)

	// 4. Load dataset in background
	go func() {
		log.Println("BACKGROUND: Loading cereal dataset...")
		t0 := time.Now()

		records, err := engine.LoadCereals(cfg.DataPath)
		if err != nil {
			log.Printf("BACKGROUND: load failed: %v", err)
			return
		}
		h.SetData(api.NewDashboard(records, cfg, observers...))

		log.Printf("BACKGROUND: %d cereals ready in %v.", len(records), time.Since(t0))
	}()

	// 5. Start Server, stop on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		log.Printf("Server ready on %s (data loading in background...)", cfg.ListenAddress)
		if err := e.Start(cfg.ListenAddress); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen error: %v", err)
		}
	}()
	<-ctx.Done()
	log.Println("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
