package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewUserError("Could not reach the metrics store", cause)

	assert.Equal(t, "Could not reach the metrics store: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := NewUserError("Something went wrong", nil)
	assert.Equal(t, "Something went wrong", bare.Error())
}

func TestUserMessage(t *testing.T) {
	wrapped := fmt.Errorf("save: %w", NewUserError("Error saving call metrics", ErrRemoteRejected))
	assert.Equal(t, "Error saving call metrics", UserMessage(wrapped, "fallback"))
	assert.Equal(t, "fallback", UserMessage(errors.New("plain"), "fallback"))
}
