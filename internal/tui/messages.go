package tui

import (
	"github.com/Veraticus/voiq/internal/dashboard"
	"github.com/google/uuid"
)

// Data loading messages.
type loadedMsg struct {
	err error
}

// Workflow messages.
type editStartedMsg struct {
	err     error
	chart   dashboard.Chart
	outcome dashboard.Outcome
}

type identitySubmittedMsg struct {
	err     error
	chart   dashboard.Chart
	outcome dashboard.Outcome
}

type savedMsg struct {
	err   error
	chart dashboard.Chart
}

// Notice expiry.
type toastExpiredMsg struct {
	id uuid.UUID
}

// Error handling.
type errorMsg struct {
	err     error
	context string
}
