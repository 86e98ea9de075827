package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"multipay/config"
	"multipay/internal/payments"
	"multipay/internal/payments/handlers"
	"multipay/internal/payments/workers"
	"multipay/internal/web"
)

func main() {
	appConfig, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := setupLogger(appConfig)

	cleanup, err := config.InitTracer(appConfig.Telemetry, logger)
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := payments.NewMetrics(registry)

	httpClient := setupHttpClient(appConfig)
	apiClient := payments.NewClient(httpClient, appConfig.API.BaseURL, metrics, logger)

	guard, closeGuard := setupGuard(ctx, appConfig, logger)
	defer closeGuard()

	monitor := workers.NewAPIMonitor(
		appConfig.API.BaseURL+appConfig.API.HealthPath,
		appConfig.API.HealthInterval,
		httpClient,
		logger,
	)
	go monitor.StartMonitoring(ctx)

	renderer, err := web.NewRenderer()
	if err != nil {
		log.Fatalf("loading templates: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer

	if appConfig.Telemetry.Enabled {
		e.Use(otelecho.Middleware(appConfig.Telemetry.ServiceName))
	}
	e.Use(requestLogger(logger))
	e.Use(middleware.Recover())

	loc := appConfig.Location()
	handlers.Routes{
		Dashboard: handlers.NewDashboardHandler(apiClient, monitor, loc, logger),
		List:      handlers.NewListPaymentsHandler(apiClient, loc, logger),
		Detail:    handlers.NewPaymentDetailHandler(apiClient, loc, logger),
		Payment:   handlers.NewPaymentHandler(apiClient, guard, metrics, logger),
	}.Register(e)

	e.StaticFS("/static", web.Static())
	e.GET("/health", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	go func() {
		logger.Info("dashboard listening", "addr", appConfig.Addr(), "payments_api", appConfig.API.BaseURL)
		if err := e.Start(appConfig.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutting down server", "error", err)
	}
}

func setupLogger(appConfig *config.AppConfig) *slog.Logger {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(appConfig.Log.Level)); err != nil {
		logLevel = slog.LevelInfo
	}
	if appConfig.Telemetry.Enabled && logLevel > slog.LevelDebug {
		logLevel = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

func setupHttpClient(appConfig *config.AppConfig) *http.Client {
	transport := http.DefaultTransport
	if appConfig.Telemetry.Enabled {
		transport = otelhttp.NewTransport(http.DefaultTransport)
	}
	return &http.Client{
		Transport: transport,
		Timeout:   appConfig.API.Timeout,
	}
}

// setupGuard picks the form token store: Redis when configured, process
// memory otherwise.
func setupGuard(ctx context.Context, appConfig *config.AppConfig, logger *slog.Logger) (payments.SubmissionGuard, func()) {
	if appConfig.Redis.URL == "" {
		logger.Info("no redis configured, form tokens kept in memory")
		return payments.NewMemoryGuard(appConfig.Redis.TokenTTL), func() {}
	}

	redisClient := setupRedisClient(appConfig)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not reachable at startup", "error", err)
	}

	return payments.NewRedisGuard(redisClient, appConfig.Redis.TokenTTL), func() {
		_ = redisClient.Close()
	}
}

func setupRedisClient(appConfig *config.AppConfig) *redis.Client {
	opt, err := redis.ParseURL(appConfig.Redis.URL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}

	redisClient := redis.NewClient(opt)

	if appConfig.Telemetry.Enabled {
		if err := redisotel.InstrumentTracing(redisClient); err != nil {
			panic(err)
		}

		if err := redisotel.InstrumentMetrics(redisClient); err != nil {
			panic(err)
		}
	}

	return redisClient
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		Skipper: func(c echo.Context) bool {
			p := c.Request().URL.Path
			return p == "/health" || p == "/metrics" || strings.HasPrefix(p, "/static/")
		},
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			level := slog.LevelInfo
			if v.Error != nil {
				level = slog.LevelError
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			logger.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}
