package booking

import (
	"errors"
	"fmt"
)

// Error codes for user-facing booking failures. All are recoverable; the
// next successful action clears them.
const (
	CodeSlotUnavailable     = "slotUnavailable"
	CodeRangeConflict       = "rangeConflict"
	CodeDurationTooShort    = "durationTooShort"
	CodeDurationTooLong     = "durationTooLong"
	CodePriceComputation    = "priceComputationFailed"
	CodeIncompleteSelection = "incompleteSelection"
)

// ErrNotOwner marks an operation on a booking the caller does not own.
var ErrNotOwner = errors.New("booking does not belong to this user")

// BookingError is a typed, user-visible booking failure.
type BookingError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newBookingError(code, format string, args ...interface{}) *BookingError {
	return &BookingError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ErrCode extracts the booking error code from err, or "" when err is
// not a BookingError.
func ErrCode(err error) string {
	var be *BookingError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
