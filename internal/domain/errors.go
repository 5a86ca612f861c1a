package domain

import "errors"

// Sentinel errors for the event registry. Callers classify failures with
// errors.Is; call sites add context with fmt.Errorf("...: %w", err).
var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrValidation        = errors.New("invalid input")
	ErrEventFull         = errors.New("event is already full")
	ErrAlreadyRegistered = errors.New("already registered for this event")
	ErrNotConfirmed      = errors.New("deletion not confirmed")
	ErrExport            = errors.New("export failed")
)
