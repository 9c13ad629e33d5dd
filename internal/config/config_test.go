package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	for key, value := range map[string]string{
		"HAPPY_PRIMARY.ENV":                         "development",
		"HAPPY_SERVER.PORT":                         "3333",
		"HAPPY_SERVER.READ_TIMEOUT":                 "30",
		"HAPPY_SERVER.WRITE_TIMEOUT":                "30",
		"HAPPY_SERVER.IDLE_TIMEOUT":                 "60",
		"HAPPY_SERVER.CORS_ALLOWED_ORIGINS":         "http://localhost:3000,http://localhost:19006",
		"HAPPY_SERVER.PUBLIC_URL":                   "http://localhost:3333",
		"HAPPY_DATABASE.HOST":                       "localhost",
		"HAPPY_DATABASE.PORT":                       "5432",
		"HAPPY_DATABASE.USER":                       "happy",
		"HAPPY_DATABASE.PASSWORD":                   "secret",
		"HAPPY_DATABASE.NAME":                       "happy",
		"HAPPY_DATABASE.SSL_MODE":                   "disable",
		"HAPPY_DATABASE.MAX_OPEN_CONNS":             "10",
		"HAPPY_DATABASE.MAX_IDLE_CONNS":             "5",
		"HAPPY_DATABASE.CONN_MAX_LIFETIME":          "300",
		"HAPPY_DATABASE.CONN_MAX_IDLE_TIME":         "60",
		"HAPPY_REDIS.ADDRESS":                       "localhost:6379",
		"HAPPY_OBSERVABILITY.LOGGING.LEVEL":         "debug",
		"HAPPY_OBSERVABILITY.LOGGING.FORMAT":        "console",
		"HAPPY_INTEGRATION.NOTIFY_EMAIL":            "team@happy.org",
		"HAPPY_EVENTS.KAFKA_BROKERS":                "localhost:9092",
		"HAPPY_UPLOAD.DRIVER":                       "local",
		"HAPPY_OBSERVABILITY.HEALTH_CHECKS.ENABLED": "true",
	} {
		t.Setenv(key, value)
	}
}

// unsetEnv removes key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoadConfig(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "3333", cfg.Server.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:19006"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, "team@happy.org", cfg.Integration.NotifyEmail)

	t.Run("optional blocks get defaults", func(t *testing.T) {
		assert.Equal(t, UploadDriverLocal, cfg.Upload.Driver)
		assert.Equal(t, "uploads", cfg.Upload.Dir)
		assert.Equal(t, "20M", cfg.Upload.MaxBodySize)
		assert.Equal(t, "happy.orphanages", cfg.Events.KafkaTopic)
		assert.True(t, cfg.Events.Enabled())
		assert.Equal(t, DefaultListCacheTTL, cfg.Redis.ListCacheTTL)
	})

	t.Run("observability follows primary config", func(t *testing.T) {
		assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
		assert.Equal(t, "development", cfg.Observability.Environment)
		assert.Equal(t, "debug", cfg.Observability.GetLogLevel())
		assert.Equal(t, 5*time.Second, cfg.Observability.HealthChecks.Timeout)
		assert.True(t, cfg.Observability.HasCheck("database"))
		assert.False(t, cfg.Observability.NewRelicEnabled())
	})
}

func TestLoadConfig_DoubleUnderscoreNesting(t *testing.T) {
	setRequiredEnv(t)
	unsetEnv(t, "HAPPY_SERVER.PORT")
	t.Setenv("HAPPY_SERVER__PORT", "8080")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	unsetEnv(t, "HAPPY_DATABASE.HOST")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Host")
}

func TestLoadConfig_MinioRequiresCredentials(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HAPPY_UPLOAD.DRIVER", "minio")
	t.Setenv("HAPPY_UPLOAD.MINIO.ENDPOINT", "localhost:9000")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "minio driver requires")
}

func TestObservabilityConfig_Validate(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	require.NoError(t, cfg.Validate())

	cfg.Logging.Level = "verbose"
	assert.Error(t, cfg.Validate())

	cfg.Logging.Level = ""
	cfg.Environment = "production"
	assert.Equal(t, "info", cfg.GetLogLevel())
	assert.NoError(t, cfg.Validate())
}
