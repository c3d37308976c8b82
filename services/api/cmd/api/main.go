package main

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/barberflow/barberflow/libs/config"
	"github.com/barberflow/barberflow/libs/db"
	"github.com/barberflow/barberflow/libs/httpx"
	"github.com/barberflow/barberflow/libs/kafkax"
	otelx "github.com/barberflow/barberflow/libs/otel"
	"github.com/barberflow/barberflow/libs/runtime"
	"github.com/barberflow/barberflow/services/api/internal/cache"
	"github.com/barberflow/barberflow/services/api/internal/handlers"
	"github.com/barberflow/barberflow/services/api/internal/outbox"
	"github.com/barberflow/barberflow/services/api/internal/storage"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	service := config.String("SERVICE_NAME", "barberflow-api")
	port, err := config.Port("PORT", "8080")
	if err != nil {
		panic(err)
	}
	logger := runtime.NewLogger(service)

	ctx, stop := runtime.SignalContext()
	defer stop()

	otelShutdown, err := otelx.Setup(ctx, otelx.ConfigFromEnv(service))
	if err != nil {
		logger.Error("otel setup failed", "err", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(shutdownCtx)
		}()
	}

	dbURL, err := config.RequiredString("DATABASE_URL")
	if err != nil {
		panic(err)
	}
	pool, err := db.Open(ctx, dbURL)
	if err != nil {
		logger.Error("db connection failed", "err", err)
		panic(err)
	}
	defer pool.Close()

	var rdb *redis.Client
	if addr := strings.TrimSpace(config.String("REDIS_ADDR", "")); addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: config.String("REDIS_PASSWORD", ""),
			DB:       config.Int("REDIS_DB", 0),
		})
		defer func() { _ = rdb.Close() }()
	}

	apptRepo := storage.NewAppointmentRepository(pool)
	clientRepo := storage.NewClientRepository(pool)
	serviceRepo := storage.NewServiceRepository(pool)
	productRepo := storage.NewProductRepository(pool)
	settingsRepo := storage.NewSettingsRepository(pool)
	userRepo := storage.NewUserRepository(pool)
	outboxRepo := outbox.NewRepository(pool)

	outboxPublisher := outbox.NewPublisher(pool, outboxRepo, logger, outbox.PublisherConfig{
		Brokers:   config.String("KAFKA_BROKERS", ""),
		PollEvery: 2 * time.Second,
		BatchSize: 50,
	})
	go outboxPublisher.Run(ctx)

	cacheTTL := time.Duration(config.Int("REPORT_CACHE_TTL_SECONDS", 600)) * time.Second
	reportsCache := cache.NewReports(rdb, logger, cacheTTL)

	jwtSecret := config.String("JWT_SECRET", "dev-secret")
	tokenTTL := time.Duration(config.Int("JWT_TTL_HOURS", 12)) * time.Hour

	authHandler := handlers.NewAuthHandler(userRepo, logger, jwtSecret, tokenTTL)
	apptHandler := handlers.NewAppointmentHandler(apptRepo, clientRepo, serviceRepo, settingsRepo, outboxRepo, reportsCache, logger)
	clientHandler := handlers.NewClientHandler(clientRepo, apptRepo, logger)
	serviceHandler := handlers.NewServiceHandler(serviceRepo, logger)
	productHandler := handlers.NewProductHandler(productRepo, apptRepo, outboxRepo, reportsCache, logger)
	reportHandler := handlers.NewReportHandler(apptRepo, productRepo, reportsCache, logger)
	settingsHandler := handlers.NewSettingsHandler(settingsRepo, logger)

	mux := runtime.NewBaseMuxWithReady(
		runtime.ReadyCheck{Name: "db", Check: db.ReadyCheck(pool)},
		runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(config.String("KAFKA_BROKERS", ""))},
	)
	mux.HandleFunc("/api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("/api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("/api/v1/auth/me", handlers.RequireAuth(jwtSecret, authHandler.Me))
	mux.HandleFunc("/api/v1/appointments", handlers.RequireAuth(jwtSecret, apptHandler.Appointments))
	mux.HandleFunc("/api/v1/appointments/update", handlers.RequireAuth(jwtSecret, apptHandler.Update))
	mux.HandleFunc("/api/v1/appointments/status", handlers.RequireAuth(jwtSecret, apptHandler.Status))
	mux.HandleFunc("/api/v1/appointments/slots", handlers.RequireAuth(jwtSecret, apptHandler.Slots))
	mux.HandleFunc("/api/v1/agenda", handlers.RequireAuth(jwtSecret, apptHandler.Agenda))
	mux.HandleFunc("/api/v1/clients", handlers.RequireAuth(jwtSecret, clientHandler.Clients))
	mux.HandleFunc("/api/v1/clients/stats", handlers.RequireAuth(jwtSecret, clientHandler.Stats))
	mux.HandleFunc("/api/v1/services", handlers.RequireAuth(jwtSecret, serviceHandler.Services))
	mux.HandleFunc("/api/v1/products", handlers.RequireAuth(jwtSecret, productHandler.Products))
	mux.HandleFunc("/api/v1/products/sell", handlers.RequireAuth(jwtSecret, productHandler.Sell))
	mux.HandleFunc("/api/v1/reports/summary", handlers.RequireAuth(jwtSecret, reportHandler.Summary))
	mux.HandleFunc("/api/v1/reports/monthly", handlers.RequireAuth(jwtSecret, reportHandler.Monthly))
	mux.HandleFunc("/api/v1/reports/products", handlers.RequireAuth(jwtSecret, reportHandler.Products))
	mux.HandleFunc("/api/v1/settings", handlers.RequireAuth(jwtSecret, settingsHandler.Settings))

	bodyLimit := int64(config.Int("REQUEST_BODY_LIMIT_BYTES", 1<<20))
	requestTimeout := time.Duration(config.Int("REQUEST_TIMEOUT_SECONDS", 10)) * time.Second
	limitPerMinute := config.Int("RATE_LIMIT_PER_MINUTE", 120)

	var rateLimitMW httpx.Middleware
	if rdb != nil {
		rl := httpx.NewRedisRateLimiter(rdb, limitPerMinute, time.Minute, config.String("RATE_LIMIT_PREFIX", "rl"))
		rateLimitMW = rl.Middleware(logger, config.Bool("RATE_LIMIT_FAIL_OPEN", true))
		logger.Info("rate limiting enabled (redis)", "per_minute", limitPerMinute)
	} else {
		rl := httpx.NewRateLimiter(limitPerMinute, time.Minute)
		rateLimitMW = rl.Middleware()
		logger.Info("rate limiting enabled (in-memory)", "per_minute", limitPerMinute)
	}

	handler := httpx.Chain(mux,
		httpx.WithCORS(httpx.CORSPolicy{
			AllowedOrigins:   parseList(config.String("CORS_ALLOWED_ORIGINS", "")),
			AllowedMethods:   parseList(config.String("CORS_ALLOWED_METHODS", "GET,POST,PUT,DELETE,OPTIONS")),
			AllowedHeaders:   parseList(config.String("CORS_ALLOWED_HEADERS", "Authorization,Content-Type,X-Request-Id")),
			AllowCredentials: config.Bool("CORS_ALLOW_CREDENTIALS", false),
			MaxAge:           time.Duration(config.Int("CORS_MAX_AGE_SECONDS", 600)) * time.Second,
		}),
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
		httpx.WithBodyLimit(bodyLimit),
		httpx.WithTimeout(requestTimeout),
		rateLimitMW,
	)
	handler = otelhttp.NewHandler(handler, "api")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "err", err)
	}
	logger.Info("http server stopped")
}

func parseList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
