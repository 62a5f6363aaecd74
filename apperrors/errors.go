package apperrors

import (
	"errors"
	"fmt"
)

type AppError struct {
	Code     Code    `json:"code"`
	Message  string  `json:"message"`
	Distance float64 `json:"distance,omitempty"` // set only for TOO_FAR
	Cause    error   `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

// Constructors
func New(code Code, message string) error {
	return &AppError{Code: code, Message: message}
}

func Wrap(code Code, message string, cause error) error {
	return &AppError{Code: code, Message: message, Cause: cause}
}

func InvalidArg(msg string) error {
	return New(CodeInvalidArgument, msg)
}

func NotFound(msg string) error {
	return New(CodeNotFound, msg)
}

func Unauthorized(msg string) error {
	return New(CodeUnauthenticated, msg)
}

func Internal(msg string) error {
	return New(CodeInternal, msg)
}

// TooFar reports a failed proximity check along with the computed distance
// in meters so the client can show the user how far off they are.
func TooFar(distanceMeters float64, msg string) error {
	return &AppError{Code: CodeTooFar, Message: msg, Distance: distanceMeters}
}

// CodeOf extracts the Code from an error chain, or CodeUnknown.
func CodeOf(err error) Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// As unwraps err into an *AppError if one is present in the chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
