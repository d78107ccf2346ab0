package model

import "errors"

// Sentinel errors shared by every store backend and the service layer.
// Callers classify failures with errors.Is; wrapping layers add operation
// context with %w and never change the kind.
var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrAlreadyArchived = errors.New("already archived")
	ErrValidation      = errors.New("validation error")
	ErrNotImplemented  = errors.New("not implemented")
	ErrUnavailable     = errors.New("store unavailable")
)
