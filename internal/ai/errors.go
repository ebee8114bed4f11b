package ai

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRequestFailed matches every *RequestError via errors.Is.
var ErrRequestFailed = errors.New("ai request failed")

// RequestError reports a failed call to a text-generation backend: a
// transport failure, a non-success status, an error envelope, or a reply
// that carries no completion.
type RequestError struct {
	Backend    string
	StatusCode int // 0 when no response was received
	Message    string
	Err        error
}

// Error describes the backend, status and cause.
func (e *RequestError) Error() string {
	var b strings.Builder
	b.WriteString(e.Backend)
	b.WriteString(" request failed")
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	switch {
	case e.Message != "":
		b.WriteString(": ")
		b.WriteString(e.Message)
	case e.Err != nil:
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying transport or decode error, if any.
func (e *RequestError) Unwrap() error { return e.Err }

// Is reports whether target is ErrRequestFailed.
func (e *RequestError) Is(target error) bool { return target == ErrRequestFailed }
