package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_RedactsSecretKeys(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := NewFromCore(core)

	log.Info("login", "access_token", "abc.def.ghi", "email", "x@tup.edu.ph", "password", "hunter2")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "[REDACTED]", fields["access_token"])
	assert.Equal(t, "[REDACTED]", fields["password"])
	assert.Equal(t, "x@tup.edu.ph", fields["email"])
}

func TestLogger_WithAddsFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := NewFromCore(core).With("component", "dispatcher")

	log.Warn("lookup failed", "user_id", "u-1")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zap.WarnLevel, entry.Level)
	assert.Equal(t, "lookup failed", entry.Message)
	assert.Equal(t, "dispatcher", entry.ContextMap()["component"])
	assert.Equal(t, "u-1", entry.ContextMap()["user_id"])
}

func TestLogger_OddKeyValuesDoNotPanic(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := NewFromCore(core)

	assert.NotPanics(t, func() { log.Error("dangling", "key") })
	assert.NotZero(t, logs.FilterMessage("dangling").Len())
}

func TestNew_Modes(t *testing.T) {
	for _, mode := range []string{"development", "production"} {
		l, err := New(mode)
		require.NoError(t, err, mode)
		require.NotNil(t, l.StdLog())
	}
}
