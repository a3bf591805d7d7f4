package domain

import "errors"

var (
	ErrInvalidInterval    = errors.New("interval start must be before end")
	ErrCourtNotFound      = errors.New("court not found")
	ErrCourtNameRequired  = errors.New("court name required")
	ErrCourtAlreadyExists = errors.New("court already exists")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrBookingCancelled   = errors.New("booking is cancelled")
	ErrSlotConflict       = errors.New("slot already booked")
	ErrForbidden          = errors.New("caller does not own this booking")
	ErrLeadTimeViolation  = errors.New("booking starts in less than 24 hours")
	ErrUnauthenticated    = errors.New("missing or invalid credentials")
	ErrInvalidID          = errors.New("invalid id")

	// ErrTxConflict marks a retryable storage collision (serialization
	// failure or deadlock). It never reaches callers directly.
	ErrTxConflict = errors.New("transaction conflict")
	// ErrStoreTransient is surfaced once retries are exhausted.
	ErrStoreTransient = errors.New("temporary storage failure")
)
