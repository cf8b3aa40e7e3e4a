package errors

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestNilError(t *testing.T) {
	assert.Nil(t, NewError(nil, ConfigFailureExitCode))
	var e *ExitCodeError
	assert.Equal(t, ExitCode(0), e.GetExitCode())
	assert.Equal(t, ExitCode(0), ExitCodeOf(nil))
}

func TestExitCodeOf(t *testing.T) {
	cause := errors.New("no such file")
	err := NewError(cause, ConfigFailureExitCode)
	assert.Equal(t, "no such file", err.Error())
	assert.Equal(t, ExitCode(ConfigFailureExitCode), err.GetExitCode())
	assert.True(t, errors.Is(err, cause))

	wrapped := fmt.Errorf("loader: %w", errors.Wrap(err, "reading config"))
	assert.Equal(t, ExitCode(ConfigFailureExitCode), ExitCodeOf(wrapped))

	outer := NewError(wrapped, InstallFailureExitCode)
	assert.Equal(t, ExitCode(InstallFailureExitCode), ExitCodeOf(outer))

	assert.Equal(t, GenericFailureExitCode, ExitCodeOf(cause))
}
