package domain

import "fmt"

type ValidationKind string

const (
	InvalidSide          = ValidationKind("INVALID_SIDE")
	InvalidQuantity      = ValidationKind("INVALID_QUANTITY")
	InvalidPrice         = ValidationKind("INVALID_PRICE")
	SymbolNotTradable    = ValidationKind("SYMBOL_NOT_TRADABLE")
	InvalidStopDirection = ValidationKind("INVALID_STOP_DIRECTION")
)

// ValidationError is a local input failure. It is never sent to the
// exchange and is surfaced to the operator without retry.
type ValidationError struct {
	Kind   ValidationKind
	Detail string
}

func (err *ValidationError) Error() string {
	return err.Detail
}

func NewValidationError(kind ValidationKind, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

type ConnectivityKind string

const (
	AuthFailure = ConnectivityKind("AUTH_FAILURE")
	Timeout     = ConnectivityKind("TIMEOUT")
	Unreachable = ConnectivityKind("UNREACHABLE")
)

// ConnectivityError is a transport or authentication failure talking to
// the exchange. The current workflow step aborts; retrying is left to
// the operator.
type ConnectivityError struct {
	Kind ConnectivityKind
	Err  error
}

func (err *ConnectivityError) Error() string {
	return fmt.Sprintf("exchange unavailable (%s): %v", err.Kind, err.Err)
}

func (err *ConnectivityError) Unwrap() error {
	return err.Err
}

// RejectionError is a business-level rejection from the exchange,
// carrying its own code and reason. Resubmission is an explicit new
// operator action, never automatic.
type RejectionError struct {
	Code   int64
	Reason string
}

func (err *RejectionError) Error() string {
	return fmt.Sprintf("order rejected by exchange (code %d): %s", err.Code, err.Reason)
}
