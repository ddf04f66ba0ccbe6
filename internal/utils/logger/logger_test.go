package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel(""))
}

func TestLogger_WithCarriesFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := FromZap(zap.New(core)).With("service", "voice")

	log.Info("transcript parsed", "name", "latte")
	log.Debug("dropped")

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "transcript parsed", entries[0].Message)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "voice", ctx["service"])
	assert.Equal(t, "latte", ctx["name"])
}

func TestNew(t *testing.T) {
	l, err := New("info", "json")
	assert.NoError(t, err)
	assert.NotNil(t, l)
	NewNop().Info("ignored")
}
