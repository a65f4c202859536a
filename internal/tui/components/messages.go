package components

// FieldEditedMsg reports a changed cell in the edit grid.
type FieldEditedMsg struct {
	Field string
	Raw   string
	Index int
}

// SaveRequestedMsg asks to save the current edit.
type SaveRequestedMsg struct{}

// CancelEditMsg asks to discard the current edit.
type CancelEditMsg struct{}
