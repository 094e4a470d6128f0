package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"sanjudas/config"
)

func TestInitializeLoggerHonorsConfiguredLevel(t *testing.T) {
	prevLevel := config.AppConfig.LogLevel
	prevLogger := Logger
	defer func() {
		config.AppConfig.LogLevel = prevLevel
		Logger = prevLogger
	}()

	config.AppConfig.LogLevel = "warn"
	InitializeLogger()

	require.NotNil(t, Logger)
	assert.True(t, Logger.Core().Enabled(zapcore.WarnLevel))
	assert.False(t, Logger.Core().Enabled(zapcore.InfoLevel))
}

func TestInitializeLoggerIgnoresInvalidLevel(t *testing.T) {
	prevLevel := config.AppConfig.LogLevel
	prevLogger := Logger
	defer func() {
		config.AppConfig.LogLevel = prevLevel
		Logger = prevLogger
	}()

	config.AppConfig.LogLevel = "shouting"
	InitializeLogger()

	require.NotNil(t, Logger)
	assert.True(t, Logger.Core().Enabled(zapcore.InfoLevel))
}
