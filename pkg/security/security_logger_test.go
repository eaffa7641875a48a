package security

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "j***@example.com", MaskEmail("jane@example.com"))
	assert.Equal(t, "***@example.com", MaskEmail("j@example.com"))
	assert.Equal(t, "***", MaskEmail("ab"))
	assert.Equal(t, "***", MaskEmail("no-at-sign"))
}

func TestHashValue(t *testing.T) {
	assert.Len(t, HashValue("42"), 16)
	assert.Equal(t, HashValue("42"), HashValue("42"))
	assert.NotEqual(t, HashValue("42"), HashValue("43"))
}

func TestSecurityLoggerLevels(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	sl := InitSecurityLogger(zap.New(core), "svc", "test")

	sl.LogLoginFailed(context.Background(), "jane@example.com", "10.0.0.1", "wrong_password")
	sl.LogLoginSuccess(context.Background(), "jane@example.com", "10.0.0.1")
	sl.LogBlockCreated(context.Background(), "jane@example.com", "10.0.0.1", 15)

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zap.WarnLevel, entries[0].Level)
	assert.Equal(t, zap.InfoLevel, entries[1].Level)
	assert.Equal(t, zap.ErrorLevel, entries[2].Level)
	assert.Equal(t, "j***@example.com", entries[0].ContextMap()["subject_value"])
}
