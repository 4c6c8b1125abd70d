package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kitchenorders/internal/api"
	"kitchenorders/internal/config"
	"kitchenorders/internal/database"
	"kitchenorders/internal/forecast"
	"kitchenorders/internal/monitoring"
	"kitchenorders/internal/pricing"
	"kitchenorders/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	port         = flag.Int("port", 0, "API server port (overrides config)")
	metricsPort  = flag.Int("metrics-port", 0, "Metrics server port (overrides config)")
	configFile   = flag.String("config", "configs/config.yaml", "Path to configuration file")
	seedCustomer = flag.String("seed", "", "Seed demo order history for this customer id")
)

const seedWeeks = 8

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *port > 0 {
		cfg.Port = *port
	}
	if *metricsPort > 0 {
		cfg.Metrics.Port = *metricsPort
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	logger.SetGlobalLogger(log)

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database
	db, err := database.Open(cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	store := database.NewStore(db, log)

	if *seedCustomer != "" {
		written, err := database.SeedHistory(ctx, store, *seedCustomer, time.Now(), seedWeeks)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to seed order history")
		}
		log.Info().Str("customer_id", *seedCustomer).Int("orders", written).Msg("Seed complete")
	}

	// Initialize metrics collector
	metrics := monitoring.NewMetrics()

	engine := forecast.NewEngine(store, pricing.NewCalculator(), metrics, log)
	defaults := forecast.Options{
		LookbackWeeks:    cfg.Forecast.LookbackWeeks,
		ApplyToEmptyOnly: cfg.Forecast.ApplyToEmptyOnly,
		MinConfidence:    cfg.Forecast.MinConfidence,
	}

	// Initialize API server
	orderAPI := api.NewOrderAPI(store, engine, monitoring.NewMonitor(), defaults, log)
	orderAPI.RunTimeout = cfg.Forecast.QueryTimeout

	// Start metrics server
	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		metricsServer = newMetricsServer(cfg.Metrics, metrics)
		go func() {
			log.Info().Int("port", cfg.Metrics.Port).Msg("Starting metrics server")
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("Metrics server error")
			}
		}()
	}

	// Start API server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: orderAPI.Router,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info().Msg("Shutting down servers...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("API server shutdown error")
		}
		if metricsServer != nil {
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("Metrics server shutdown error")
			}
		}

		cancel() // Cancel main context
	}()

	log.Info().Int("port", cfg.Port).Msg("Starting API server")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("API server error")
	}

	<-ctx.Done()
}

func newMetricsServer(cfg config.MetricsConfig, metrics *monitoring.Metrics) *http.Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET(cfg.Path, gin.WrapH(promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{})))

	return &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}
}
