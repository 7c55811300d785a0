// Package main is the entrypoint for the TownBoard API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/townboard/townboard/internal/activity"
	"github.com/townboard/townboard/internal/auth"
	"github.com/townboard/townboard/internal/cache"
	"github.com/townboard/townboard/internal/config"
	"github.com/townboard/townboard/internal/handler"
	"github.com/townboard/townboard/internal/metrics"
	"github.com/townboard/townboard/internal/middleware"
	"github.com/townboard/townboard/internal/repository"
	"github.com/townboard/townboard/internal/server"
	"github.com/townboard/townboard/internal/service"
)

func main() {
	ctx := context.Background()

	// Load .env in development; environment variables win over file values.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize database
	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	// Initialize cache and session store
	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	defer cacheClient.Close()
	logger.Info("connected to Redis")

	// Initialize services
	recorder := metrics.NewInMemory()
	userService := service.NewUserService(repo, auth.NewArgon2Hasher(), recorder)
	eventService := service.NewEventService(repo, recorder)
	commentService := service.NewCommentService(repo, repo, recorder)

	// Initialize activity feed pipeline
	activityPublisher := activity.NewPublisher(cacheClient.Client(), logger, recorder)
	activityWorker := activity.NewWorker(cacheClient.Client(), repo, logger, activity.NewConsumerID(), recorder)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	metricsHandler := handler.NewMetricsHandler(recorder)
	authHandler := handler.NewAuthHandler(userService, cacheClient, logger, recorder, cfg.SessionTTL, cfg.SessionCookieSecure)
	eventHandler := handler.NewEventHandler(eventService, activityPublisher, logger)
	commentHandler := handler.NewCommentHandler(commentService, activityPublisher, logger)
	activityHandler := handler.NewActivityHandler(repo, logger)

	// Setup router
	r := setupRouter(routerDeps{
		health:   healthHandler,
		metrics:  metricsHandler,
		auth:     authHandler,
		events:   eventHandler,
		comments: commentHandler,
		activity: activityHandler,
		users:    userService,
		cache:    cacheClient,
		cfg:      cfg,
		logger:   logger,
	})

	// Create and run server
	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	// Run the feed worker alongside the HTTP server and drain it on shutdown.
	srv.OnShutdown("activity_worker", activityWorker.Shutdown)
	go func() {
		if err := activityWorker.Run(context.Background()); err != nil && err != context.Canceled {
			logger.Error("activity worker stopped", "error", err)
		}
	}()

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	level := parseLogLevel(cfg.LogLevel)

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type routerDeps struct {
	health   *handler.HealthHandler
	metrics  *handler.MetricsHandler
	auth     *handler.AuthHandler
	events   *handler.EventHandler
	comments *handler.CommentHandler
	activity *handler.ActivityHandler
	users    *service.UserService
	cache    *cache.Cache
	cfg      *config.Config
	logger   *slog.Logger
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(deps routerDeps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.logger))
	r.Use(middleware.Recoverer(deps.logger))
	r.Use(middleware.Security(middleware.SecurityConfig{
		IsDevelopment: deps.cfg.IsDevelopment(),
	}))
	r.Use(middleware.MaxBodySize(deps.cfg.MaxRequestBodySize))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = deps.cfg.GetCORSAllowedOrigins()
	// Cookies carry the session, so credentialed CORS is required.
	corsCfg.AllowCredentials = true
	r.Use(middleware.CORS(corsCfg))

	r.Use(middleware.Session(middleware.SessionConfig{
		Logger:   deps.logger,
		Sessions: deps.cache,
		Users:    deps.users,
	}))

	// Health and metrics endpoints
	r.Get("/healthz", deps.health.Healthz)
	r.Get("/readyz", deps.health.Readyz)
	r.Get("/metrics", deps.metrics.Metrics)

	authRateLimit := middleware.RateLimitIP(middleware.RateLimitConfig{
		Logger:            deps.logger,
		Cache:             deps.cache,
		Enabled:           deps.cfg.RateLimitAuthEnabled,
		RequestsPerMinute: deps.cfg.RateLimitAuthPerMin,
		Burst:             deps.cfg.RateLimitAuthBurst,
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(authRateLimit).Post("/register", deps.auth.Register)
			r.With(authRateLimit).Post("/login", deps.auth.Login)
			r.Post("/logout", deps.auth.Logout)
			r.Get("/status", deps.auth.Status)
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", deps.events.List)
			r.Post("/", deps.events.Create)
			r.Get("/search", deps.events.Search)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", deps.events.Get)
				r.Put("/", deps.events.Update)
				r.Delete("/", deps.events.Delete)
				r.Get("/comments", deps.comments.List)
				r.Post("/comments", deps.comments.Add)
			})
		})

		r.Route("/comments", func(r chi.Router) {
			r.Put("/{id}", deps.comments.Edit)
			r.Delete("/{id}", deps.comments.Delete)
		})

		r.Get("/activity", deps.activity.List)
	})

	// 404 and 405 handlers
	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
