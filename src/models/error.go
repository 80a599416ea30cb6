package models

import (
	"errors"
	"fmt"
)

var UsernameRequiredErr = fmt.Errorf("username is required")
var PasswordRequiredErr = fmt.Errorf("password is required")
var BrokerRequiredErr = fmt.Errorf("broker is required")
var AccountRequiredErr = fmt.Errorf("account must be selected")
var IsinRequiredErr = fmt.Errorf("isin is required")
var StockLabelRequiredErr = fmt.Errorf("stock label is required")
var InvalidPriceErr = fmt.Errorf("price must be a positive number")
var InvalidCountErr = fmt.Errorf("count must be a positive whole number")
var InvalidDeadlineErr = fmt.Errorf("deadline must be a valid date and time")
var DeadlineExceededErr = fmt.Errorf("deadline exceeded")

// ErrorKind is the uniform classification of every failure the client can surface.
type ErrorKind string

const (
	ErrorKindValidation     ErrorKind = "validation"
	ErrorKindAuthentication ErrorKind = "authentication"
	ErrorKindNetwork        ErrorKind = "network"
	ErrorKindServer         ErrorKind = "server"
	ErrorKindUnknown        ErrorKind = "unknown"
)

// ClientError is the failure variant of a Result.
// Status is zero when no HTTP response was received.
type ClientError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

func (e *ClientError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}

	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}

	return string(e.Kind)
}

func (e *ClientError) Unwrap() error {
	return e.Err
}

func NewClientError(kind ErrorKind, status int, message string, err error) *ClientError {
	return &ClientError{
		Kind:    kind,
		Status:  status,
		Message: message,
		Err:     err,
	}
}

func NewValidationError(err error) *ClientError {
	return NewClientError(ErrorKindValidation, 0, err.Error(), err)
}

// AsClientError converts any error into a ClientError, keeping the kind of a wrapped ClientError.
func AsClientError(err error) *ClientError {
	if err == nil {
		return nil
	}

	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr
	}

	return NewClientError(ErrorKindUnknown, 0, "", err)
}

// ErrorDTO is a single entry of a 422 response body.
type ErrorDTO struct {
	Loc  []interface{} `json:"loc,omitempty"`
	Msg  string        `json:"msg"`
	Type string        `json:"type,omitempty"`
}

// ErrorResponse is the envelope written by the backend error middleware.
// Message is either a string or a list of ErrorDTO.
type ErrorResponse struct {
	Level   string      `json:"level"`
	Message interface{} `json:"message"`
}
