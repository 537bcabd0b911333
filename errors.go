package inglify

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Public messages returned to callers. These are the exact strings shown
// to users and sent over the wire.
const (
	MsgRequired       = "Text and target language are required"
	MsgNotConfigured  = "Gemini API key not configured"
	MsgUpstreamFailed = "Failed to get translation from Gemini API"
	MsgInvalidReply   = "Invalid response from Gemini API"
	MsgParseFailed    = "Failed to parse translation results"
	MsgInternal       = "Internal server error"
	MsgRateLimited    = "Too many requests, please try again later"
)

// ErrCanceled is returned when an operation was abandoned on purpose, for
// example speech stopped by the user. It is never shown as an error.
var ErrCanceled = errors.New("canceled")

// PublicError is implemented by errors that carry a user-facing message.
type PublicError interface {
	error
	PublicMessage() string
}

// ValidationError indicates the request was malformed. It maps to 400.
type ValidationError struct {
	Message string
	Field   string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error (%s): %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) PublicMessage() string { return e.Message }

// ConfigurationError indicates the gateway cannot run, usually because the
// model credential is missing.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Message)
}

func (e *ConfigurationError) PublicMessage() string { return e.Message }

// UpstreamError indicates the model call failed or returned an unusable
// envelope.
type UpstreamError struct {
	Message    string
	Cause      error
	StatusCode int // HTTP status from the model, 0 if none
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		if e.Cause != nil {
			return fmt.Sprintf("upstream error (status %d): %s: %v", e.StatusCode, e.Message, e.Cause)
		}
		return fmt.Sprintf("upstream error (status %d): %s", e.StatusCode, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("upstream error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("upstream error: %s", e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

func (e *UpstreamError) PublicMessage() string { return e.Message }

// ParseError indicates the model reply did not contain the expected JSON.
type ParseError struct {
	Message string
	Cause   error
	Raw     string // The model text that failed to parse
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

func (e *ParseError) PublicMessage() string { return MsgParseFailed }

// RateLimitError indicates the gateway refused a request because its
// request budget is spent. It maps to 429.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited: retry after %s", e.RetryAfter)
}

func (e *RateLimitError) PublicMessage() string { return MsgRateLimited }

// Capture failure reasons.
const (
	CaptureNotAllowed = "not-allowed"
	CaptureNetwork    = "network"
)

// CaptureError indicates speech capture failed. Reason is one of the
// Capture constants or a free-form reason reported by the recognizer.
type CaptureError struct {
	Reason string
	Cause  error
}

func (e *CaptureError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("capture error (%s): %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("capture error (%s)", e.Reason)
}

func (e *CaptureError) Unwrap() error {
	return e.Cause
}

// PlaybackError indicates speech synthesis failed.
type PlaybackError struct {
	Cause error
}

func (e *PlaybackError) Error() string {
	return fmt.Sprintf("playback error: %v", e.Cause)
}

func (e *PlaybackError) Unwrap() error {
	return e.Cause
}

// ClipboardError indicates a clipboard write failed.
type ClipboardError struct {
	Cause error
}

func (e *ClipboardError) Error() string {
	return fmt.Sprintf("clipboard error: %v", e.Cause)
}

func (e *ClipboardError) Unwrap() error {
	return e.Cause
}

// StatusCode maps an error to the HTTP status the gateway answers with.
func StatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest
	}
	var rerr *RateLimitError
	if errors.As(err, &rerr) {
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}

// PublicMessage returns the user-facing message carried by err, or fallback
// when err carries none.
func PublicMessage(err error, fallback string) string {
	var perr PublicError
	if errors.As(err, &perr) {
		if msg := perr.PublicMessage(); msg != "" {
			return msg
		}
	}
	return fallback
}
