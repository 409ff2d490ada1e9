package services

import (
	"errors"
	"fmt"

	"newpack/internal/repositories"
)

// ErrorKind classifies a business failure so the transport can pick a status code.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindNotFound
	KindUnauthorized
	KindForbidden
	KindConfig
	KindUnavailable
	KindDelivery
)

// Error is returned by services for failures the caller can act on.
// Title and Message become the error and message fields of the response.
type Error struct {
	Kind    ErrorKind
	Title   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Title, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Title, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error { return e.Err }

// AsError extracts a service Error from err.
func AsError(err error) (*Error, bool) {
	var serr *Error
	if errors.As(err, &serr) {
		return serr, true
	}
	return nil, false
}

// IsKind reports whether err is a service Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	serr, ok := AsError(err)
	return ok && serr.Kind == kind
}

func validationError(title, message string) *Error {
	return &Error{Kind: KindValidation, Title: title, Message: message}
}

func notFoundError(title, message string) *Error {
	return &Error{Kind: KindNotFound, Title: title, Message: message}
}

var (
	errUserNotFound        = notFoundError("User not found", "User with this ID does not exist")
	errAddressNotFound     = notFoundError("Address not found", "Address with this ID does not exist")
	errProductNotFound     = notFoundError("Product not found", "Product with this ID does not exist")
	errImageNotFound       = notFoundError("Product image not found", "Product image with this ID does not exist")
	errOrderNotFound       = notFoundError("Order not found", "Order with this ID does not exist")
	errOrderDetailNotFound = notFoundError("Order_details not found", "Order_details with this ID does not exist")
)

// lookupError replaces a repository not-found error with the given service error.
func lookupError(err error, notFound *Error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return notFound
	}
	return err
}
