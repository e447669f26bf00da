package revision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetLogger(t *testing.T) {
	defer SetLogger(nil)

	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	logger.Error("recorded")
	assert.Equal(t, 1, logs.FilterMessage("recorded").Len())

	SetLogger(nil)
	assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel), "the default logger is silent")
	logger.Error("dropped")
	assert.Equal(t, 0, logs.FilterMessage("dropped").Len())
}
