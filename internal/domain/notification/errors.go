package notification

import (
	"errors"
	"fmt"
)

var (
	ErrStoreUnavailable = errors.New("user store unavailable")
	ErrInvalidInput     = errors.New("invalid input")
	ErrDeliveryFailure  = errors.New("delivery failure")
)

type DeliveryError struct {
	UserID string
	Err    error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver to user %s: %v", e.UserID, e.Err)
}

func (e *DeliveryError) Unwrap() []error { return []error{ErrDeliveryFailure, e.Err} }
