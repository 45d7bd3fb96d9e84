package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	StorageDriver  string
	MigrationsPath string

	JWTSecret string
	JWTIssuer string

	RateLimit          string // ulule/limiter formatted rate, e.g. "250-M"
	AuthRateLimit      string
	RedisURL           string // Optional shared limiter store
	CORSAllowedOrigins []string

	PosthogAPIKey   string
	PosthogEndpoint string

	KafkaBrokers       []string
	KafkaTopic         string
	OutboxPollInterval time.Duration
	OutboxBatchSize    int

	AccountNumberPrefix  string
	ProvisionMaxAttempts int
	CommitTimeout        time.Duration
	ShutdownTimeout      time.Duration
}

// EventPublishingEnabled reports whether ledger events are written to the outbox and published.
func (c *Config) EventPublishingEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("STORAGE_DRIVER", StorageDriverPostgres)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_ISSUER", "bank-ledger-app")
	v.SetDefault("RATE_LIMIT", "250-M")
	v.SetDefault("AUTH_RATE_LIMIT", "5-M")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC", "ledger.transactions")
	v.SetDefault("OUTBOX_POLL_INTERVAL", "2s")
	v.SetDefault("OUTBOX_BATCH_SIZE", 50)
	v.SetDefault("ACCOUNT_NUMBER_PREFIX", "ACCT")
	v.SetDefault("PROVISION_MAX_ATTEMPTS", 5)
	v.SetDefault("COMMIT_TIMEOUT", "5s")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	// Environment variables override .env values, which override the defaults above.
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:          v.GetString("PGSQL_URL"),
		Port:                 v.GetString("PORT"),
		IsProduction:         v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:        v.GetBool("ENABLE_DB_CHECK"),
		StorageDriver:        strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER"))),
		MigrationsPath:       v.GetString("MIGRATIONS_PATH"),
		JWTSecret:            v.GetString("JWT_SECRET"),
		JWTIssuer:            v.GetString("JWT_ISSUER"),
		RateLimit:            v.GetString("RATE_LIMIT"),
		AuthRateLimit:        v.GetString("AUTH_RATE_LIMIT"),
		RedisURL:             v.GetString("REDIS_URL"),
		CORSAllowedOrigins:   splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		PosthogAPIKey:        v.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:      v.GetString("POSTHOG_ENDPOINT"),
		KafkaBrokers:         splitList(v.GetString("KAFKA_BROKERS")),
		KafkaTopic:           v.GetString("KAFKA_TOPIC"),
		OutboxBatchSize:      v.GetInt("OUTBOX_BATCH_SIZE"),
		AccountNumberPrefix:  v.GetString("ACCOUNT_NUMBER_PREFIX"),
		ProvisionMaxAttempts: v.GetInt("PROVISION_MAX_ATTEMPTS"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	var err error
	if cfg.OutboxPollInterval, err = parseDuration(v, "OUTBOX_POLL_INTERVAL"); err != nil {
		return nil, err
	}
	if cfg.CommitTimeout, err = parseDuration(v, "COMMIT_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = parseDuration(v, "SHUTDOWN_TIMEOUT"); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StorageDriver {
	case StorageDriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("PGSQL_URL must be set when STORAGE_DRIVER is %q", StorageDriverPostgres)
		}
	case StorageDriverMemory:
		log.Println("Warning: STORAGE_DRIVER is memory. Data is not persisted.")
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.StorageDriver)
	}

	if c.JWTSecret == "" || c.JWTSecret == defaultJWTSecret {
		if c.IsProduction {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		c.JWTSecret = defaultJWTSecret
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	if c.ProvisionMaxAttempts < 1 {
		return fmt.Errorf("PROVISION_MAX_ATTEMPTS must be at least 1, got %d", c.ProvisionMaxAttempts)
	}
	if c.OutboxBatchSize < 1 {
		return fmt.Errorf("OUTBOX_BATCH_SIZE must be at least 1, got %d", c.OutboxBatchSize)
	}
	if c.EventPublishingEnabled() && c.KafkaTopic == "" {
		return fmt.Errorf("KAFKA_TOPIC must be set when KAFKA_BROKERS is set")
	}
	return nil
}

// parseDuration reads key through viper's duration cast. Unparsable values cast to zero
// and are rejected with the non-positive ones.
func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	d := v.GetDuration(key)
	if d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, v.GetString(key))
	}
	return d, nil
}

// splitList parses a comma separated list, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
