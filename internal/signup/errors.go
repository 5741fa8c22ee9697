package signup

import (
	"fmt"
	"strings"
)

const (
	GenericFailureMessage = "Signup failed. Please try again."
	NetworkErrorMessage   = "Network error. Please check if the server is running."
)

// ValidationError blocks a submission before any network call.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("signup form invalid: %s", strings.Join(e.Fields.Fields(), ", "))
}

// RejectedError is a non-200 answer from the authentication service.
type RejectedError struct {
	Status int
	Detail string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("signup rejected (status %d): %s", e.Status, e.Detail)
}

// UnreachableError means no response was received at all.
type UnreachableError struct {
	Err error
}

func (e *UnreachableError) Error() string {
	return NetworkErrorMessage
}

func (e *UnreachableError) Unwrap() error {
	return e.Err
}
