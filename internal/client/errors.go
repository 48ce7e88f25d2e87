package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents the kind of failure talking to the analysis service
type ErrorType string

const (
	// ErrTypeNetwork indicates the service could not be reached
	ErrTypeNetwork ErrorType = "network"

	// ErrTypeTimeout indicates the request exceeded its deadline
	ErrTypeTimeout ErrorType = "timeout"

	// ErrTypeService indicates a non-2xx response
	ErrTypeService ErrorType = "service"

	// ErrTypeDecode indicates an unreadable response body
	ErrTypeDecode ErrorType = "decode"

	// ErrTypeInternal indicates a client-side failure
	ErrTypeInternal ErrorType = "internal"
)

// GenericFailure is shown when the service gives no detail
const GenericFailure = "the analysis service could not process the request"

// ServiceError is returned by every Client operation that fails
type ServiceError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	StatusCode int       `json:"status_code,omitempty"`
	RequestID  string    `json:"request_id,omitempty"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *ServiceError) Error() string {
	parts := []string{fmt.Sprintf("type=%s", e.Type)}
	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}
	parts = append(parts, e.Message)
	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%s", e.Cause.Error()))
	}
	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error
func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// Is matches another ServiceError of the same type
func (e *ServiceError) Is(target error) bool {
	if se, ok := target.(*ServiceError); ok {
		return e.Type == se.Type
	}
	return false
}

// UserMessage is the text shown in place of a result
func (e *ServiceError) UserMessage() string {
	switch e.Type {
	case ErrTypeService:
		if e.Message != "" {
			return e.Message
		}
		return GenericFailure
	case ErrTypeTimeout:
		return "the analysis service did not answer in time"
	case ErrTypeNetwork:
		return "the analysis service is unreachable"
	default:
		return GenericFailure
	}
}

func newError(errType ErrorType, message string, cause error) *ServiceError {
	return &ServiceError{Type: errType, Message: message, Cause: cause}
}

// IsNetworkError reports whether err is a network or timeout failure
func IsNetworkError(err error) bool {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Type == ErrTypeNetwork || se.Type == ErrTypeTimeout
	}
	return false
}

// IsServiceError reports whether err carries a non-2xx service response
func IsServiceError(err error) bool {
	var se *ServiceError
	return errors.As(err, &se) && se.Type == ErrTypeService
}

// UserMessage extracts the notice text for any error
func UserMessage(err error) string {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.UserMessage()
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

// errorBody is the error envelope of the service. detail is either a string
// or a list of validation entries.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type validationEntry struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// parseDetail extracts a displayable detail; "" when there is none
func parseDetail(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || len(eb.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(eb.Detail, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var entries []validationEntry
	if err := json.Unmarshal(eb.Detail, &entries); err == nil {
		msgs := make([]string, 0, len(entries))
		for _, entry := range entries {
			if entry.Msg == "" {
				continue
			}
			loc := make([]string, 0, len(entry.Loc))
			for _, l := range entry.Loc {
				loc = append(loc, fmt.Sprint(l))
			}
			if len(loc) > 0 {
				msgs = append(msgs, strings.Join(loc, ".")+": "+entry.Msg)
			} else {
				msgs = append(msgs, entry.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
