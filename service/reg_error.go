package service

import (
	"errors"
	"fmt"
)

const (
	// ErrInvalidDescriptor means the instance descriptor failed validation
	// before any network call was made.
	ErrInvalidDescriptor = "invalid_descriptor"
	// ErrRegistryRejected means the registry answered with a 4xx other than
	// the heartbeat 404 (e.g. a malformed payload), or the operation was
	// invoked in a state where it cannot be performed.
	ErrRegistryRejected = "registry_rejected"
	// ErrLeaseNotFound means the registry answered 404 to a heartbeat: the
	// lease no longer exists server-side and the instance must re-register.
	ErrLeaseNotFound = "lease_not_found"
	// ErrTransportFailure means connection refused, timeout, DNS failure or
	// a 5xx response; the operation may be retried on the next tick.
	ErrTransportFailure = "transport_failure"
)

// RegError represents an error within the context of myregistrar services.
type RegError struct {
	// Code is a machine-readable code.
	Code string `json:"code,omitempty"`
	// Message is a human-readable message.
	Message string `json:"message"`
	// Inner is a wrapped error that is never shown to API consumers.
	Inner error `json:"-"`
}

// NewRegError creates a new RegError.
func NewRegError(code string, message string, inner error) *RegError {
	return &RegError{
		Code:    code,
		Message: message,
		Inner:   inner,
	}
}

func NewInvalidDescriptorError(message string, inner error) *RegError {
	regInner := ToRegError(inner)
	if regInner != nil {
		return regInner
	}

	return NewRegError(ErrInvalidDescriptor, message, inner)
}

func NewRegistryRejectedError(message string, inner error) *RegError {
	regInner := ToRegError(inner)
	if regInner != nil {
		return regInner
	}

	return NewRegError(ErrRegistryRejected, message, inner)
}

func NewLeaseNotFoundError(message string, inner error) *RegError {
	regInner := ToRegError(inner)
	if regInner != nil {
		return regInner
	}

	return NewRegError(ErrLeaseNotFound, message, inner)
}

func NewTransportFailureError(message string, inner error) *RegError {
	regInner := ToRegError(inner)
	if regInner != nil {
		return regInner
	}

	return NewRegError(ErrTransportFailure, message, inner)
}

func (e RegError) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("%s %s: %v", e.Code, e.Message, e.Inner)
	}

	return fmt.Sprintf("%s %s", e.Code, e.Message)
}

// Unwrap the error returning the error's reason.
func (e RegError) Unwrap() error {
	return e.Inner
}

// ToRegError returns a pointer to a myregistrar error, or nil if it is not a myregistrar error.
func ToRegError(err error) *RegError {
	var e *RegError
	if errors.As(err, &e) {
		return e
	}

	return nil
}

// ToRegErrorCode returns the code of the error, if available.
func ToRegErrorCode(err error) string {
	regerror := ToRegError(err)
	if regerror != nil {
		return regerror.Code
	}
	return ""
}

func IsRegError(err error, code string) bool {
	regerror := ToRegError(err)
	if regerror != nil {
		return regerror.Code == code
	}
	return false
}

func IsInvalidDescriptorError(err error) bool {
	return IsRegError(err, ErrInvalidDescriptor)
}

func IsRegistryRejectedError(err error) bool {
	return IsRegError(err, ErrRegistryRejected)
}

func IsLeaseNotFoundError(err error) bool {
	return IsRegError(err, ErrLeaseNotFound)
}

func IsTransportFailureError(err error) bool {
	return IsRegError(err, ErrTransportFailure)
}
