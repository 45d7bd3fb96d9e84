package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MemoryDefaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("PGSQL_URL", "")
	t.Setenv("KAFKA_BROKERS", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StorageDriverMemory, cfg.StorageDriver)
	assert.Equal(t, "250-M", cfg.RateLimit)
	assert.Equal(t, "5-M", cfg.AuthRateLimit)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 5, cfg.ProvisionMaxAttempts)
	assert.Equal(t, 5*time.Second, cfg.CommitTimeout)
	assert.Equal(t, 2*time.Second, cfg.OutboxPollInterval)
	assert.False(t, cfg.EventPublishingEnabled())
}

func TestLoadConfig_PostgresRequiresURL(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("PGSQL_URL", "")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "PGSQL_URL")
}

func TestLoadConfig_UnknownDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "sqlite")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "unsupported STORAGE_DRIVER")
}

func TestLoadConfig_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("IS_PRODUCTION", "true")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoadConfig_ParsesListsAndDurations(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://bank.example.com")
	t.Setenv("COMMIT_TIMEOUT", "750ms")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, []string{"https://bank.example.com"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 750*time.Millisecond, cfg.CommitTimeout)
	assert.True(t, cfg.EventPublishingEnabled())
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "SHUTDOWN_TIMEOUT")
}

func TestLoadConfig_NonPositiveDurations(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"COMMIT_TIMEOUT", "0s"},
		{"OUTBOX_POLL_INTERVAL", "-2s"},
		{"SHUTDOWN_TIMEOUT", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv("STORAGE_DRIVER", "memory")
			t.Setenv(tt.key, tt.value)

			_, err := LoadConfig()
			assert.ErrorContains(t, err, tt.key+" must be a positive duration")
		})
	}
}
