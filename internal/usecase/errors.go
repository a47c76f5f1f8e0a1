package usecase

import "errors"

// Sentinel errors shared by every usecase. Handlers translate these into
// HTTP statuses; repository errors never cross the delivery boundary raw.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal error")
)
