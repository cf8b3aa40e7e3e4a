package hooks

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestContextHookAddsCaller(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.AddHook(NewContextHook())

	l.Info("hello")

	assert.Contains(t, buf.String(), "context_hook_test.go:")
	assert.NotContains(t, buf.String(), "sirupsen/logrus")
}
