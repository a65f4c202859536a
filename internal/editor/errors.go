package editor

import (
	"errors"
	"fmt"

	"github.com/Veraticus/voiq/internal/model"
)

// Workflow errors.
var (
	ErrEmptyIdentity   = errors.New("identity cannot be empty")
	ErrInvalidIdentity = errors.New("identity must be an email address")

	ErrAlreadyEditing      = errors.New("already editing")
	ErrConfirmationPending = errors.New("confirmation pending")
	ErrBusy                = errors.New("another request is in progress")
	ErrNoPendingOverwrite  = errors.New("no saved values awaiting confirmation")
	ErrNotEditing          = errors.New("not editing")
	ErrUnknownField        = errors.New("unknown field")
	ErrFieldIndex          = errors.New("field index out of range")

	// ErrFetch and ErrWrite classify remote failures; match them with errors.Is.
	ErrFetch = errors.New("failed to load saved metrics")
	ErrWrite = errors.New("failed to save metrics")
)

// FetchError reports a failed read while starting an edit or hydrating.
type FetchError struct {
	Err      error
	Identity model.Identity
	Group    string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s for %s: %v", e.Group, e.Identity, e.Err)
}

// Unwrap exposes both ErrFetch and the underlying cause.
func (e *FetchError) Unwrap() []error {
	return []error{ErrFetch, e.Err}
}

// WriteError reports a failed save. A failed read of the sibling fields
// before the upsert is also a WriteError.
type WriteError struct {
	Err      error
	Identity model.Identity
	Group    string
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("save %s for %s: %v", e.Group, e.Identity, e.Err)
}

// Unwrap exposes both ErrWrite and the underlying cause.
func (e *WriteError) Unwrap() []error {
	return []error{ErrWrite, e.Err}
}
