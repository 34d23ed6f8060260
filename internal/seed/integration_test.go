//go:build integration

package seed

import (
	"context"
	"net/url"
	"os"
	"strings"
	"testing"

	"devswipe/internal/config"
	"devswipe/internal/database"
	"devswipe/internal/models"
)

func parseDatabaseURLToConfig(dsn string) (*config.Config, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return nil, err
	}
	password := ""
	if u.User != nil {
		password, _ = u.User.Password()
	}
	port := u.Port()
	if port == "" {
		port = "5432"
	}
	return &config.Config{
		DBDriver:     "postgres",
		DBHost:       u.Hostname(),
		DBPort:       port,
		DBUser:       u.User.Username(),
		DBPassword:   password,
		DBName:       strings.TrimPrefix(u.Path, "/"),
		DBSSLMode:    "disable",
		Env:          "test",
		DBSchemaMode: database.SchemaModeAuto,
	}, nil
}

func TestIntegration_SeedSmallPresetOnPostgres(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set; skipping integration seed test")
	}
	cfg, err := parseDatabaseURLToConfig(dsn)
	if err != nil {
		t.Fatalf("failed parse dsn: %v", err)
	}
	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("db connect failed: %v", err)
	}
	ctx := context.Background()
	if err := database.ApplySchema(ctx, db, cfg); err != nil {
		t.Fatalf("apply schema: %v", err)
	}

	s := NewSeeder(db, Options{SkipBcrypt: true, BatchSize: 50, MaxDays: 30})
	if err := s.ClearAll(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	preset, err := LookupPreset("small")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Run(ctx, preset); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var cnt int64
	if err := db.Model(&models.Message{}).Count(&cnt).Error; err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if cnt == 0 {
		t.Fatalf("expected seeded messages, got 0")
	}
}
