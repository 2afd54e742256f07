package server

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionClosed is returned when writing to a closed live session.
	ErrSessionClosed = errors.New("server: session closed")

	// ErrInvalidHandshake is returned when the first live frame is not a valid hello.
	ErrInvalidHandshake = errors.New("server: invalid handshake")

	// ErrUnexpectedResponse is returned when a live visit is not answered with a page.
	ErrUnexpectedResponse = errors.New("server: unexpected response")
)

// SessionError wraps an error with live session context.
type SessionError struct {
	SessionID string
	Op        string
	Err       error
}

func (e *SessionError) Error() string {
	if e.SessionID == "" {
		return fmt.Sprintf("server: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("server: session %s: %s: %v", e.SessionID, e.Op, e.Err)
}

func (e *SessionError) Unwrap() error {
	return e.Err
}
