package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/deppfellow/happy/internal/config"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSON(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Environment = "production"
	cfg.Logging.Level = "warn"

	var buf bytes.Buffer
	log := newLogger(cfg, nil, &buf)

	log.Info().Msg("dropped")
	log.Warn().Str("orphanage", "Lar").Msg("kept")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "kept", entry["message"])
	assert.Equal(t, "happy", entry["service"])
	assert.Equal(t, "production", entry["environment"])
	assert.Equal(t, "Lar", entry["orphanage"])
}

func TestLoggerService_Disabled(t *testing.T) {
	svc := NewLoggerService(config.DefaultObservabilityConfig())
	assert.Nil(t, svc.GetApplication())
	svc.Shutdown()

	var nilSvc *LoggerService
	assert.Nil(t, nilSvc.GetApplication())
}

func TestWithTraceContext_NilTransaction(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	l := WithTraceContext(base, nil)
	l.Info().Msg("x")
	assert.NotContains(t, buf.String(), "trace.id")
}

func TestGetPgxTraceLogLevel(t *testing.T) {
	tests := map[zerolog.Level]tracelog.LogLevel{
		zerolog.TraceLevel: tracelog.LogLevelTrace,
		zerolog.DebugLevel: tracelog.LogLevelDebug,
		zerolog.InfoLevel:  tracelog.LogLevelInfo,
		zerolog.WarnLevel:  tracelog.LogLevelWarn,
		zerolog.ErrorLevel: tracelog.LogLevelError,
		zerolog.Disabled:   tracelog.LogLevelNone,
	}
	for in, want := range tests {
		assert.Equal(t, want, GetPgxTraceLogLevel(in), in.String())
	}
}
