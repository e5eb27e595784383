package booking

import (
	"errors"
	"fmt"
)

var (
	ErrBarberMismatch = errors.New("barber mismatch")
	ErrNotFound       = errors.New("not found")
	ErrInvalidRange   = errors.New("invalid date range")
	ErrMissingService = errors.New("missing service")
)

// ProviderError is any failure reported by the scheduling provider,
// including responses that came back without the expected object.
type ProviderError struct {
	Op         string
	StatusCode int
	Code       string
	Detail     string
	Err        error
}

func (e *ProviderError) Error() string {
	msg := e.Op
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// UserMessage is the first provider detail, or fallback when there is none.
func (e *ProviderError) UserMessage(fallback string) string {
	if e.Detail != "" {
		return e.Detail
	}
	return fallback
}

func AsProviderError(err error) (*ProviderError, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
