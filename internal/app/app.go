package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"

	"tutorflow/backend/internal/api"
	"tutorflow/backend/internal/config"
	"tutorflow/backend/internal/database"
	"tutorflow/backend/internal/llm"
	"tutorflow/backend/internal/ratelimit"
	"tutorflow/backend/internal/repository"
	"tutorflow/backend/internal/service"
)

const shutdownTimeout = 30 * time.Second

// App holds the wired dependencies of a running server.
type App struct {
	DB     *sql.DB
	Redis  *redis.Client // nil when summaries are cached in SQLite
	Server *http.Server

	tutor   *service.TutorService
	summary *service.SummaryCache
}

// Option customizes NewApp.
type Option func(*options)

type options struct {
	registrations []llm.Registration
}

// WithRegistrations replaces the built-in model table.
func WithRegistrations(regs []llm.Registration) Option {
	return func(o *options) { o.registrations = regs }
}

// NewApp opens storage and wires services and routes. It does not start listening.
func NewApp(cfg *config.Config, opts ...Option) (*App, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registrations == nil {
		o.registrations = llm.DefaultRegistrations(llm.ProvidersConfig{
			OpenAIAPIKey:    cfg.OpenAIAPIKey,
			OpenAIBaseURL:   cfg.OpenAIBaseURL,
			AzureAPIKey:     cfg.AzureOpenAIAPIKey,
			AzureEndpoint:   cfg.AzureOpenAIEndpoint,
			AzureDeployment: cfg.AzureOpenAIDeployment,
			AWSRegion:       cfg.AWSRegion,
			OllamaURL:       cfg.OllamaURL,
		})
	}

	db, err := database.InitDB(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	slog.Info("Successfully connected to SQLite database.", "path", cfg.DatabasePath)

	a := &App{DB: db}
	summaryStore := a.summaryStore(cfg)

	registry := llm.NewRegistry(cfg.DefaultModel, o.registrations)
	for _, m := range registry.Models() {
		if !m.Configured {
			slog.Warn("Model provider is not configured, requests for it will fail.", "model", m.ID, "provider", m.Provider)
		}
	}

	repo := repository.NewSQLiteRepository(db)
	pipeline := service.NewPipeline(cfg.GenerationTimeout())
	a.summary = service.NewSummaryCache(summaryStore)
	a.tutor = service.NewTutorService(repo, registry, pipeline, cfg.HistoryWindow)
	summaryService := service.NewSummaryService(repo, registry, pipeline, a.summary)
	modelService := service.NewModelService(registry)

	limiter := ratelimit.New()
	router := api.NewRouter(api.Handlers{
		Tutor:   api.NewTutorHandler(a.tutor),
		Summary: api.NewSummaryHandler(summaryService),
		Models:  api.NewModelHandler(modelService),
	}, limiter, api.RateLimits{
		Reply:      cfg.RateLimitReply,
		Regenerate: cfg.RateLimitRegenerate,
		Summary:    cfg.RateLimitSummary,
		Window:     cfg.RateLimitWindow(),
	})

	a.Server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // Disabled for streaming endpoints
		IdleTimeout:       120 * time.Second,
	}
	return a, nil
}

// summaryStore picks Redis when it is configured and reachable, SQLite otherwise.
func (a *App) summaryStore(cfg *config.Config) repository.SummaryStore {
	if cfg.RedisAddr == "" {
		return repository.NewSQLiteSummaryStore(a.DB)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Warn("Redis is unreachable, caching summaries in SQLite.", "addr", cfg.RedisAddr, "error", err)
		if cErr := rdb.Close(); cErr != nil {
			slog.Warn("Failed to close Redis client", "error", cErr)
		}
		return repository.NewSQLiteSummaryStore(a.DB)
	}
	slog.Info("Successfully connected to Redis.", "addr", cfg.RedisAddr)
	a.Redis = rdb
	return repository.NewRedisSummaryStore(rdb, cfg.SummaryCacheTTL())
}

// Shutdown stops accepting requests, lets in-flight streams and background
// writes finish, then releases storage. If ctx expires first, open streams are
// closed and pending background writes are abandoned.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if err := a.Server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown: %w", err))
		// Streams are still running and may start background writes, so
		// they are cut off and not waited for.
		slog.Warn("Server did not drain in time, closing open streams.", "error", err)
		if cErr := a.Server.Close(); cErr != nil {
			errs = append(errs, fmt.Errorf("server close: %w", cErr))
		}
	} else {
		a.tutor.Wait()
		a.summary.Wait()
	}

	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	if err := a.DB.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close database: %w", err))
	}
	return errors.Join(errs...)
}

// Run serves until SIGINT or SIGTERM and returns the process exit code.
func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)

	logConfigSource()

	a, err := NewApp(cfg)
	if err != nil {
		slog.Error("Failed to start application", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "port", cfg.AppPort)
		serveErr <- a.Server.ListenAndServe()
	}()

	code := 0
	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			code = 1
		}
	case <-ctx.Done():
		slog.Info("Shutdown signal received.")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.Shutdown(shutdownCtx); err != nil {
		slog.Error("Shutdown did not complete cleanly", "error", err)
		code = 1
	}
	slog.Info("Server stopped.")
	return code
}

// RunMigrations applies pending migrations, or rolls back the given number of steps.
func RunMigrations(rollbackSteps int) int {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}
	setupLogger(cfg.LogLevel)

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		slog.Error("Failed to open database", "error", err)
		return 1
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if rollbackSteps > 0 {
		err = database.Rollback(db, rollbackSteps)
	} else {
		err = database.Migrate(db)
	}
	if err != nil {
		slog.Error("Migration failed", "error", err)
		return 1
	}
	return 0
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
