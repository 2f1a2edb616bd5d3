package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestToZapFields_SortedAndErrorsNamed(t *testing.T) {
	fields := toZapFields(map[string]interface{}{
		"score":    90,
		"careerId": "c-1",
		"cause":    errors.New("boom"),
	})

	assert.Len(t, fields, 3)
	assert.Equal(t, "careerId", fields[0].Key)
	assert.Equal(t, "cause", fields[1].Key)
	assert.Equal(t, zapcore.ErrorType, fields[1].Type)
	assert.Equal(t, "score", fields[2].Key)
}

func TestToZapFields_Empty(t *testing.T) {
	assert.Nil(t, toZapFields(nil))
}

func TestWithFields_CarriesContext(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core)).WithFields(map[string]interface{}{"taskType": "calculate-career-match"})

	log.Warn("unknown grade symbol", map[string]interface{}{"grade": "Z"})

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "unknown grade symbol", entries[0].Message)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "calculate-career-match", ctx["taskType"])
	assert.Equal(t, "Z", ctx["grade"])
}

func TestNew_FallsBackOnUnknownLevel(t *testing.T) {
	l := New("loud", "json")
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}
