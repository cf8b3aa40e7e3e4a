package log

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l, err := New("warn", &buf)
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, l.GetLevel())

	l.Info("hidden")
	l.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "file:line")
}

func TestNewLoggerBadLevel(t *testing.T) {
	_, err := New("chatty", nil)
	assert.Error(t, err)
}
