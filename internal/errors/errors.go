// Package errors defines the domain error taxonomy shared by services and
// handlers. Each error carries the machine code and HTTP status surfaced
// in the response envelope.
package errors

import "fmt"

// DomainError is a typed service failure with a stable code.
type DomainError struct {
	Code    string
	Message string
	Status  int
}

func (e *DomainError) Error() string {
	return e.Message
}

// WithMessage returns a copy of the error carrying a request-specific
// message while keeping the code and status.
func (e *DomainError) WithMessage(format string, args ...interface{}) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: fmt.Sprintf(format, args...),
		Status:  e.Status,
	}
}
