// Package bootstrap wires the process-level dependencies shared by the
// server and the operational commands.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"devswipe/internal/cache"
	"devswipe/internal/config"
	"devswipe/internal/database"
	"devswipe/internal/middleware"
	"devswipe/internal/observability"
	"devswipe/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Version is stamped at build time with -ldflags "-X devswipe/internal/bootstrap.Version=...".
var Version = "dev"

// Options control runtime initialization behavior.
type Options struct {
	// SeedPreset, when set in development, seeds an empty database with
	// the named preset.
	SeedPreset string
	// SkipSchema leaves the schema untouched (cmd/migrate manages it itself).
	SkipSchema bool
}

// Runtime holds the shared dependencies of a process.
type Runtime struct {
	DB            *gorm.DB
	Redis         *redis.Client
	ShutdownTrace func(context.Context) error
}

// InitRuntime configures logging and tracing, connects to the database and
// Redis, applies the schema and optionally seeds demo data. Redis is
// optional: an unreachable server leaves Runtime.Redis nil.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*Runtime, error) {
	middleware.ConfigureLogger(cfg.Env, cfg.LogLevel)

	shutdownTrace, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    observability.ServiceName,
		ServiceVersion: Version,
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.TraceSampleRate,
	})
	if err != nil {
		return nil, fmt.Errorf("tracing setup failed: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		_ = shutdownTrace(ctx)
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if !opts.SkipSchema {
		if err := database.ApplySchema(ctx, db, cfg); err != nil {
			_ = database.Close(db)
			_ = shutdownTrace(ctx)
			return nil, fmt.Errorf("schema setup failed: %w", err)
		}
	}

	rt := &Runtime{
		DB:            db,
		Redis:         cache.InitRedis(cfg.RedisURL),
		ShutdownTrace: shutdownTrace,
	}

	if opts.SeedPreset != "" {
		if err := seedIfEmpty(ctx, cfg, db, opts.SeedPreset); err != nil {
			rt.Close(ctx)
			return nil, fmt.Errorf("failed to seed development data: %w", err)
		}
	}

	return rt, nil
}

// Close releases everything InitRuntime opened. Servers normally close the
// database and Redis themselves, so Close only covers startup failures and
// short-lived commands.
func (r *Runtime) Close(ctx context.Context) {
	if err := database.Close(r.DB); err != nil {
		middleware.Logger.Error("error closing database", slog.String("error", err.Error()))
	}
	if r.Redis != nil {
		_ = r.Redis.Close()
	}
	if r.ShutdownTrace != nil {
		if err := r.ShutdownTrace(ctx); err != nil {
			middleware.Logger.Error("error flushing traces", slog.String("error", err.Error()))
		}
	}
}

func seedIfEmpty(ctx context.Context, cfg *config.Config, db *gorm.DB, presetName string) error {
	if !strings.EqualFold(cfg.Env, "development") {
		middleware.Logger.Warn("ignoring seed preset outside development", slog.String("env", cfg.Env))
		return nil
	}

	var users int64
	if err := db.WithContext(ctx).Table("users").Count(&users).Error; err != nil {
		return err
	}
	if users > 0 {
		return nil
	}

	preset, err := seed.LookupPreset(presetName)
	if err != nil {
		return err
	}
	_, err = seed.NewSeeder(db, seed.Options{SkipBcrypt: preset.SkipBcrypt, MaxDays: preset.MaxDays, BatchSize: preset.BatchSize}).Run(ctx, preset)
	return err
}
