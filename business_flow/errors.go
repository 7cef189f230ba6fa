// Package businessflow contains the quote use case: classifying and sanitizing client requests, shaping them for the carrier and checking what comes back
package businessflow

import (
	"errors"
	"fmt"
	"strings"
)

// Business flow error constants
var (
	// Request errors. Messages are returned to clients verbatim.
	ErrMalformedBody       = errors.New("Invalid request body: expected an object")
	ErrUnsupportedState    = errors.New("Invalid state: must be either AZ or TX")
	ErrInvalidQuoteRequest = errors.New("invalid quote request")

	// Configuration errors
	ErrConfiguration = errors.New("invalid carrier configuration")

	// Carrier errors
	ErrInvalidCarrierResponse = errors.New("invalid carrier response")
)

// Business error codes
const (
	CodeInvalidQuoteRequest    = "INVALID_QUOTE_REQUEST"
	CodeConfiguration          = "CONFIGURATION_ERROR"
	CodeCarrierRequestFailed   = "CARRIER_REQUEST_FAILED"
	CodeInvalidCarrierResponse = "INVALID_CARRIER_RESPONSE"
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewBusinessErrorf(code, message string, err error, args ...any) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: fmt.Sprintf(message, args...),
		Err:     err,
	}
}

// FieldIssue is a single violated field. Path is empty for rules that are not
// tied to one field.
type FieldIssue struct {
	Path   string
	Reason string
}

func (i FieldIssue) String() string {
	if i.Path == "" {
		return i.Reason
	}
	return i.Path + ": " + i.Reason
}

// ValidationError aggregates every issue found in one validation phase
type ValidationError struct {
	Kind   error
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.String())
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// Paths lists the offending field paths in report order
func (e *ValidationError) Paths() []string {
	paths := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		paths = append(paths, issue.Path)
	}
	return paths
}

func newValidationError(kind error, issues []FieldIssue) error {
	if len(issues) == 0 {
		return nil
	}
	return &ValidationError{Kind: kind, Issues: issues}
}

func IsMalformedBody(err error) bool {
	return errors.Is(err, ErrMalformedBody)
}

func IsUnsupportedState(err error) bool {
	return errors.Is(err, ErrUnsupportedState)
}

func IsInvalidQuoteRequest(err error) bool {
	return errors.Is(err, ErrInvalidQuoteRequest)
}

func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

func IsCarrierRequestFailed(err error) bool {
	var be *BusinessError
	return errors.As(err, &be) && be.Code == CodeCarrierRequestFailed
}

func IsInvalidCarrierResponse(err error) bool {
	return errors.Is(err, ErrInvalidCarrierResponse)
}
