package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Gortyum/feriadigital/api"
	"github.com/Gortyum/feriadigital/api/routes"
	"github.com/Gortyum/feriadigital/internal/auth"
	"github.com/Gortyum/feriadigital/internal/categories"
	"github.com/Gortyum/feriadigital/internal/fairs"
	"github.com/Gortyum/feriadigital/internal/products"
	"github.com/Gortyum/feriadigital/internal/reservations"
	"github.com/Gortyum/feriadigital/internal/stalls"
	"github.com/Gortyum/feriadigital/internal/stats"
	"github.com/Gortyum/feriadigital/internal/users"
	"github.com/Gortyum/feriadigital/pkg/config"
	"github.com/Gortyum/feriadigital/pkg/db"
	"github.com/Gortyum/feriadigital/pkg/logger"
	"github.com/Gortyum/feriadigital/pkg/metrics"
	"github.com/Gortyum/feriadigital/pkg/migrate"
	"github.com/Gortyum/feriadigital/pkg/redis"
	"github.com/Gortyum/feriadigital/pkg/session"
	"github.com/Gortyum/feriadigital/pkg/weather"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.Session)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)
	weatherMetrics := metrics.NewWeatherMetrics(registry)

	var forecast *weather.Service
	if cfg.Weather.APIKey != "" {
		weatherClient, err := weather.NewClient(cfg.Weather)
		if err != nil {
			logg.Error(context.Background(), "failed to create weather client", err)
			os.Exit(1)
		}
		forecast = weather.NewService(weatherClient, redisClient, logg, weatherMetrics, cfg.Weather)
	} else {
		logg.Warn(context.Background(), "weather api key not set, fair pages render without weather")
	}

	conn := dbClient.DB()

	authService, err := auth.NewService(conn, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	stallsService, err := stalls.NewService(stalls.NewRepository(conn), fairs.NewRepository(conn))
	if err != nil {
		logg.Error(context.Background(), "failed to create stalls service", err)
		os.Exit(1)
	}

	productsService, err := products.NewService(products.NewRepository(conn), stalls.NewRepository(conn))
	if err != nil {
		logg.Error(context.Background(), "failed to create products service", err)
		os.Exit(1)
	}

	reservationsService, err := reservations.NewService(conn, stalls.NewRepository(conn))
	if err != nil {
		logg.Error(context.Background(), "failed to create reservations service", err)
		os.Exit(1)
	}

	statsService, err := stats.NewService(conn, stalls.NewRepository(conn))
	if err != nil {
		logg.Error(context.Background(), "failed to create stats service", err)
		os.Exit(1)
	}

	router := routes.NewRouter(routes.Deps{
		Config:       cfg,
		Logger:       logg,
		DB:           dbClient,
		Redis:        redisClient,
		Sessions:     sessionManager,
		HTTPMetrics:  httpMetrics,
		Metrics:      promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		Users:        users.NewRepository(conn),
		Auth:         authService,
		Fairs:        fairs.NewService(fairs.NewRepository(conn)),
		Forecast:     forecast,
		Stalls:       stallsService,
		Categories:   categories.NewRepository(conn),
		Products:     productsService,
		Reservations: reservationsService,
		Stats:        statsService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := api.NewServer(addr, router)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-shutdown:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down")
		stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(stopCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}
