// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Env  string `mapstructure:"APP_ENV"`
	Port string `mapstructure:"PORT"`

	JWTSecret     string `mapstructure:"JWT_SECRET"`
	JWTIssuer     string `mapstructure:"JWT_ISSUER"`
	JWTAudience   string `mapstructure:"JWT_AUDIENCE"`
	TokenTTLHours int    `mapstructure:"TOKEN_TTL_HOURS"`

	DBDriver                 string `mapstructure:"DB_DRIVER"`
	DBSQLitePath             string `mapstructure:"DB_SQLITE_PATH"`
	DBHost                   string `mapstructure:"DB_HOST"`
	DBPort                   string `mapstructure:"DB_PORT"`
	DBUser                   string `mapstructure:"DB_USER"`
	DBPassword               string `mapstructure:"DB_PASSWORD"`
	DBName                   string `mapstructure:"DB_NAME"`
	DBSSLMode                string `mapstructure:"DB_SSLMODE"`
	DBSchemaMode             string `mapstructure:"DB_SCHEMA_MODE"`
	DBMaxOpenConns           int    `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns           int    `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBConnMaxLifetimeMinutes int    `mapstructure:"DB_CONN_MAX_LIFETIME_MINUTES"`
	DBStatementTimeoutMS     int    `mapstructure:"DB_STATEMENT_TIMEOUT_MS"`
	DBSlowQueryMS            int    `mapstructure:"DB_SLOW_QUERY_MS"`

	RedisURL string `mapstructure:"REDIS_URL"`

	AllowedOrigins        string `mapstructure:"ALLOWED_ORIGINS"`
	FeatureFlags          string `mapstructure:"FEATURE_FLAGS"`
	RequestTimeoutSeconds int    `mapstructure:"REQUEST_TIMEOUT_SECONDS"`
	RateLimitPerMinute    int    `mapstructure:"RATE_LIMIT_PER_MINUTE"`
	AuthRateLimitPerMin   int    `mapstructure:"AUTH_RATE_LIMIT_PER_MINUTE"`
	LogLevel              string `mapstructure:"LOG_LEVEL"`
	DevSeedPreset         string `mapstructure:"DEV_SEED_PRESET"`

	MessagePageDefault int `mapstructure:"MESSAGE_PAGE_DEFAULT"`
	MessagePageMax     int `mapstructure:"MESSAGE_PAGE_MAX"`

	StorageBackend    string `mapstructure:"STORAGE_BACKEND"`
	StorageLocalDir   string `mapstructure:"STORAGE_LOCAL_DIR"`
	PublicBaseURL     string `mapstructure:"PUBLIC_BASE_URL"`
	UploadMaxSizeMB   int    `mapstructure:"UPLOAD_MAX_SIZE_MB"`
	MinioEndpoint     string `mapstructure:"MINIO_ENDPOINT"`
	MinioAccessKey    string `mapstructure:"MINIO_ACCESS_KEY"`
	MinioSecretKey    string `mapstructure:"MINIO_SECRET_KEY"`
	MinioBucket       string `mapstructure:"MINIO_BUCKET"`
	MinioUseSSL       bool   `mapstructure:"MINIO_USE_SSL"`
	MinioPublicURL    string `mapstructure:"MINIO_PUBLIC_URL"`
	APNsKeyPath       string `mapstructure:"APNS_KEY_PATH"`
	APNsKeyID         string `mapstructure:"APNS_KEY_ID"`
	APNsTeamID        string `mapstructure:"APNS_TEAM_ID"`
	APNsTopic         string `mapstructure:"APNS_TOPIC"`
	APNsProduction    bool   `mapstructure:"APNS_PRODUCTION"`
	PushWorkers       int    `mapstructure:"PUSH_WORKERS"`
	PushQueueSize     int    `mapstructure:"PUSH_QUEUE_SIZE"`
	PushTimeoutSecond int    `mapstructure:"PUSH_TIMEOUT_SECONDS"`

	TracingEnabled  bool    `mapstructure:"TRACING_ENABLED"`
	TracingExporter string  `mapstructure:"TRACING_EXPORTER"`
	OTLPEndpoint    string  `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	TraceSampleRate float64 `mapstructure:"TRACE_SAMPLE_RATE"`
}

const defaultJWTSecret = "devswipe-dev-secret-change-in-production"

// LoadConfig loads application configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// The base file is optional.
	_ = viper.ReadInConfig()

	env := viper.GetString("APP_ENV")
	if env != "" && env != "development" && env != "test" {
		viper.SetConfigName("config." + env)
		if err := viper.MergeInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config.%s.yml: %w", env, err)
			}
		}
	}

	setDefaults()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	config.normalize()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_ISSUER", "devswipe-api")
	viper.SetDefault("JWT_AUDIENCE", "devswipe-client")
	viper.SetDefault("TOKEN_TTL_HOURS", 24*7)

	viper.SetDefault("DB_DRIVER", "postgres")
	viper.SetDefault("DB_SQLITE_PATH", "devswipe.db")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "devswipe")
	viper.SetDefault("DB_PASSWORD", "password")
	viper.SetDefault("DB_NAME", "devswipe")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_SCHEMA_MODE", "")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 10)
	viper.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 30)
	viper.SetDefault("DB_STATEMENT_TIMEOUT_MS", 10000)
	viper.SetDefault("DB_SLOW_QUERY_MS", 200)

	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:8081")
	viper.SetDefault("FEATURE_FLAGS", "")
	viper.SetDefault("REQUEST_TIMEOUT_SECONDS", 15)
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 300)
	viper.SetDefault("AUTH_RATE_LIMIT_PER_MINUTE", 20)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DEV_SEED_PRESET", "")

	viper.SetDefault("MESSAGE_PAGE_DEFAULT", 50)
	viper.SetDefault("MESSAGE_PAGE_MAX", 100)

	viper.SetDefault("STORAGE_BACKEND", "local")
	viper.SetDefault("STORAGE_LOCAL_DIR", "./uploads")
	viper.SetDefault("PUBLIC_BASE_URL", "http://localhost:8080")
	viper.SetDefault("UPLOAD_MAX_SIZE_MB", 10)
	viper.SetDefault("MINIO_ENDPOINT", "")
	viper.SetDefault("MINIO_ACCESS_KEY", "")
	viper.SetDefault("MINIO_SECRET_KEY", "")
	viper.SetDefault("MINIO_BUCKET", "devswipe-uploads")
	viper.SetDefault("MINIO_USE_SSL", false)
	viper.SetDefault("MINIO_PUBLIC_URL", "")
	viper.SetDefault("APNS_KEY_PATH", "")
	viper.SetDefault("APNS_KEY_ID", "")
	viper.SetDefault("APNS_TEAM_ID", "")
	viper.SetDefault("APNS_TOPIC", "")
	viper.SetDefault("APNS_PRODUCTION", false)
	viper.SetDefault("PUSH_WORKERS", 4)
	viper.SetDefault("PUSH_QUEUE_SIZE", 256)
	viper.SetDefault("PUSH_TIMEOUT_SECONDS", 10)

	viper.SetDefault("TRACING_ENABLED", false)
	viper.SetDefault("TRACING_EXPORTER", "otlp")
	viper.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318")
	viper.SetDefault("TRACE_SAMPLE_RATE", 0.1)
}

func (c *Config) normalize() {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	c.DBSSLMode = strings.ToLower(strings.TrimSpace(c.DBSSLMode))
	c.StorageBackend = strings.ToLower(strings.TrimSpace(c.StorageBackend))
	c.PublicBaseURL = strings.TrimRight(strings.TrimSpace(c.PublicBaseURL), "/")
}

// IsProduction reports whether the app runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// TokenTTL returns how long issued bearer tokens stay valid.
func (c *Config) TokenTTL() time.Duration {
	if c.TokenTTLHours <= 0 {
		return 7 * 24 * time.Hour
	}
	return time.Duration(c.TokenTTLHours) * time.Hour
}

// RequestTimeout is the deadline applied to each HTTP request context.
func (c *Config) RequestTimeout() time.Duration {
	if c.RequestTimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// UploadMaxBytes returns the upload size limit in bytes.
func (c *Config) UploadMaxBytes() int64 {
	return int64(c.UploadMaxSizeMB) * 1024 * 1024
}

// APNsConfigured reports whether all APNs token-auth settings are present.
func (c *Config) APNsConfigured() bool {
	return c.APNsKeyPath != "" && c.APNsKeyID != "" && c.APNsTeamID != "" && c.APNsTopic != ""
}

// Validate ensures that required configuration values are present and meet security standards.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", c.DBDriver)
	}
	switch c.StorageBackend {
	case "local", "minio":
	default:
		return fmt.Errorf("STORAGE_BACKEND must be local or minio, got %q", c.StorageBackend)
	}
	if c.StorageBackend == "minio" && (c.MinioEndpoint == "" || c.MinioAccessKey == "" || c.MinioSecretKey == "") {
		return errors.New("MINIO_ENDPOINT, MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required for the minio backend")
	}
	if c.UploadMaxSizeMB <= 0 {
		return errors.New("UPLOAD_MAX_SIZE_MB must be positive")
	}
	if c.MessagePageMax <= 0 || c.MessagePageDefault <= 0 || c.MessagePageDefault > c.MessagePageMax {
		return errors.New("MESSAGE_PAGE_DEFAULT must be positive and not exceed MESSAGE_PAGE_MAX")
	}
	if c.DBConnMaxLifetimeMinutes < 0 {
		return errors.New("DB_CONN_MAX_LIFETIME_MINUTES cannot be negative")
	}

	if c.IsProduction() {
		if c.JWTSecret == defaultJWTSecret {
			return errors.New("JWT_SECRET must be changed from the default value in production")
		}
		if len(c.JWTSecret) < 32 {
			return errors.New("JWT_SECRET must be at least 32 characters in production")
		}
		if c.DBDriver == "sqlite" {
			return errors.New("sqlite is not supported in production")
		}
		if c.DBPassword == "password" || c.DBPassword == "" {
			return errors.New("a strong DB_PASSWORD is required in production")
		}
		if c.DBSSLMode == "disable" || c.DBSSLMode == "" {
			return errors.New("DB_SSLMODE must enable TLS in production")
		}
		if c.AllowedOrigins == "*" {
			return errors.New("ALLOWED_ORIGINS cannot be '*' in production")
		}
	} else if len(c.JWTSecret) < 32 {
		slog.Warn("JWT_SECRET is shorter than 32 characters; use a stronger secret for production")
	}

	return nil
}
