package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/realstatepro/billing/internal/config"
	"github.com/realstatepro/billing/internal/types"
)

func TestNewLoggerHonorsConfiguredLevel(t *testing.T) {
	cfg := &config.Configuration{
		Logging: config.LoggingConfig{Level: types.LogLevelDebug},
	}
	l, err := NewLogger(cfg)
	require.NoError(t, err)
	assert.True(t, l.Desugar().Core().Enabled(zapcore.DebugLevel))

	l, err = NewLogger(nil)
	require.NoError(t, err)
	assert.False(t, l.Desugar().Core().Enabled(zapcore.DebugLevel))
	assert.True(t, l.Desugar().Core().Enabled(zapcore.InfoLevel))
}

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	cfg := &config.Configuration{
		Logging: config.LoggingConfig{Level: "verbose"},
	}
	_, err := NewLogger(cfg)
	assert.Error(t, err)
}
