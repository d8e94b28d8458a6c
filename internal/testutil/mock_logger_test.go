package testutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/molsketch/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molsketch/internal/testutil"
)

var _ logging.Logger = (*testutil.MockLogger)(nil)

func TestMockLogger(t *testing.T) {
	logger := testutil.NewMockLogger()

	logger.Info("test info", logging.String("key", "value"))

	messages := logger.GetMessages()
	require.Len(t, messages, 1)
	assert.Equal(t, "info", messages[0].Level)
	assert.Equal(t, "test info", messages[0].Message)

	v, ok := messages[0].Field("key")
	assert.True(t, ok)
	assert.Equal(t, "value", v)
	_, ok = messages[0].Field("missing")
	assert.False(t, ok)

	logger.Clear()
	assert.Len(t, logger.GetMessages(), 0)

	logger.Named("child").Error("test error")
	assert.True(t, logger.HasMessage("error", "test error"))
	assert.False(t, logger.HasMessage("info", "test info"))
}

//Personal.AI order the ending
