// internal/pkg/apperrors/errors.go
package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure taxonomy. Services wrap these with %w so
// handlers can map them to HTTP statuses with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrProfileIncomplete  = errors.New("profile incomplete")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// InsufficientStockError carries the available quantity so the message can
// cite it to the client.
type InsufficientStockError struct {
	ItemName  string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	if e.ItemName != "" {
		return fmt.Sprintf("insufficient stock for '%s'. Available: %d, Requested: %d",
			e.ItemName, e.Available, e.Requested)
	}
	return fmt.Sprintf("insufficient stock. Available: %d, Requested: %d", e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// ProfileIncompleteError lists the exact missing field labels so the client
// can prompt precisely.
type ProfileIncompleteError struct {
	MissingFields []string
}

func (e *ProfileIncompleteError) Error() string {
	return fmt.Sprintf("customer profile is incomplete: missing %v", e.MissingFields)
}

func (e *ProfileIncompleteError) Unwrap() error { return ErrProfileIncomplete }

// NotFound wraps ErrNotFound with a subject, e.g. NotFound("cart item").
func NotFound(subject string) error {
	return fmt.Errorf("%s %w", subject, ErrNotFound)
}

// Invalid wraps ErrInvalidInput with a reason.
func Invalid(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, reason)
}
