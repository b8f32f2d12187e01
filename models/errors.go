package models

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes store errors so callers can decide how to recover.
type ErrorKind int

const (
	// KindInternal indicates an infrastructure failure (database, broker).
	KindInternal ErrorKind = iota
	// KindNotFound indicates an unknown product or order id.
	KindNotFound
	// KindValidation indicates a missing or invalid field, or a total mismatch.
	KindValidation
	// KindInvalidTransition indicates an order status change outside the transition table.
	KindInvalidTransition
	// KindConcurrentOperation indicates a duplicate authorize or checkout while one is in flight.
	KindConcurrentOperation
	// KindPaymentDeclined indicates the simulated gateway refused or timed out.
	KindPaymentDeclined
	// KindUnauthorized indicates the caller's role may not perform the operation.
	KindUnauthorized
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "NOT_FOUND"
	case KindValidation:
		return "VALIDATION"
	case KindInvalidTransition:
		return "INVALID_TRANSITION"
	case KindConcurrentOperation:
		return "CONCURRENT_OPERATION"
	case KindPaymentDeclined:
		return "PAYMENT_DECLINED"
	case KindUnauthorized:
		return "UNAUTHORIZED"
	default:
		return "INTERNAL"
	}
}

// StoreError is returned by every cart, order, payment and checkout operation.
type StoreError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *StoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}

// NotFoundError creates a NOT_FOUND error.
func NotFoundError(format string, args ...any) *StoreError {
	return &StoreError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// ValidationError creates a VALIDATION error.
func ValidationError(format string, args ...any) *StoreError {
	return &StoreError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// InvalidTransitionError creates an INVALID_TRANSITION error for from -> to.
func InvalidTransitionError(from, to OrderStatus) *StoreError {
	return &StoreError{
		Kind:    KindInvalidTransition,
		Message: fmt.Sprintf("cannot move order from %s to %s", from, to),
	}
}

// ConcurrentOperationError creates a CONCURRENT_OPERATION error.
func ConcurrentOperationError(format string, args ...any) *StoreError {
	return &StoreError{Kind: KindConcurrentOperation, Message: fmt.Sprintf(format, args...)}
}

// PaymentDeclinedError creates a PAYMENT_DECLINED error carrying the gateway reason.
func PaymentDeclinedError(reason string) *StoreError {
	return &StoreError{Kind: KindPaymentDeclined, Message: reason}
}

// UnauthorizedError creates an UNAUTHORIZED error.
func UnauthorizedError(format string, args ...any) *StoreError {
	return &StoreError{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

// InternalError wraps an infrastructure failure.
func InternalError(msg string, cause error) *StoreError {
	return &StoreError{Kind: KindInternal, Message: msg, Cause: cause}
}

// AsStoreError extracts a StoreError from an error chain.
func AsStoreError(err error) *StoreError {
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return storeErr
	}
	return nil
}

// KindOf returns the kind of err, KindInternal for foreign errors.
func KindOf(err error) ErrorKind {
	if storeErr := AsStoreError(err); storeErr != nil {
		return storeErr.Kind
	}
	return KindInternal
}

func IsNotFound(err error) bool            { return err != nil && KindOf(err) == KindNotFound }
func IsValidation(err error) bool          { return err != nil && KindOf(err) == KindValidation }
func IsInvalidTransition(err error) bool   { return err != nil && KindOf(err) == KindInvalidTransition }
func IsConcurrentOperation(err error) bool { return err != nil && KindOf(err) == KindConcurrentOperation }
func IsPaymentDeclined(err error) bool     { return err != nil && KindOf(err) == KindPaymentDeclined }
func IsUnauthorized(err error) bool        { return err != nil && KindOf(err) == KindUnauthorized }
