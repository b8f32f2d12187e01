package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears keys for the duration of the test. envconfig treats a
// variable set to "" as present, so defaults only apply to unset ones.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, "ENV", "PORT", "LOG_LEVEL", "DEFAULT_LANGUAGE", "OWNER_TOKENS", "SNAPSHOT_INTERVAL", "CART_IDLE_TTL",
		"DATABASE_URL", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
		"KAFKA_BROKERS", "KAFKA_TOPIC",
		"PAYMENT_MIN_DELAY", "PAYMENT_MAX_DELAY", "PAYMENT_TIMEOUT", "PAYMENT_SUCCESS_RATE")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, time.Second, cfg.Payment.MinDelay)
	assert.Equal(t, 3*time.Second, cfg.Payment.MaxDelay)
	assert.Equal(t, 15*time.Second, cfg.Payment.Timeout)
	assert.InDelta(t, 0.9, cfg.Payment.SuccessRate, 1e-9)
	assert.Equal(t, 24*time.Hour, cfg.CartIdleTTL)
	assert.False(t, cfg.Database.Enabled())
	assert.Empty(t, cfg.Kafka.BrokerList())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("OWNER_TOKENS", "alpha,beta")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("PAYMENT_MIN_DELAY", "10ms")
	t.Setenv("PAYMENT_MAX_DELAY", "20ms")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "florist")
	t.Setenv("DB_NAME", "pookadai")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"alpha", "beta"}, cfg.OwnerTokens)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.BrokerList())
	assert.Equal(t, 10*time.Millisecond, cfg.Payment.MinDelay)

	conn, err := cfg.Database.ConnString()
	require.NoError(t, err)
	assert.Contains(t, conn, "host=localhost")
	assert.Contains(t, conn, "dbname=pookadai")
}

func TestLoad_RejectsBadPaymentSettings(t *testing.T) {
	unsetEnv(t, "PAYMENT_TIMEOUT", "PAYMENT_SUCCESS_RATE", "SNAPSHOT_INTERVAL")
	t.Setenv("PAYMENT_MIN_DELAY", "5s")
	t.Setenv("PAYMENT_MAX_DELAY", "1s")
	_, err := Load()
	assert.Error(t, err)
}

func TestDatabase_ConnString(t *testing.T) {
	_, err := Database{Host: "localhost"}.ConnString()
	assert.Error(t, err)

	conn, err := Database{URL: "postgres://x"}.ConnString()
	require.NoError(t, err)
	assert.Equal(t, "postgres://x", conn)
}
