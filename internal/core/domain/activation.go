// Package domain defines the core domain models for snotify.
package domain

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// WindowID identifies a window on the display connection.
type WindowID uint32

// None is the zero WindowID; no valid window carries it.
const None WindowID = 0

// RequestIDPrefix is the prefix for activation request ids.
const RequestIDPrefix = "snrq-"

// State is the position of the event-loop binding in its activation wait.
type State int

const (
	// StateIdle means no token is pending and no deadline is armed.
	StateIdle State = iota

	// StateAwaitingToken means a request was issued and the deadline is
	// armed; the token has not arrived yet.
	StateAwaitingToken

	// StateReady means a token is held and the next window built consumes
	// it.
	StateReady
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingToken:
		return "awaiting-token"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// PendingActivation is the per-request record the binding tracks between
// issuing a token request and consuming (or abandoning) the result.
//
// At most one of {Token set, Deadline expired with no Token} decides the
// next window's tagging; the binding enforces the exclusivity.
type PendingActivation struct {
	// RequestID correlates the request with its async token delivery.
	// Format: snrq-{ulid_lowercase}.
	RequestID string

	// Window is the window the request was issued against.
	Window WindowID

	// Token is the activation token, once delivered.
	Token string

	// Deadline bounds the wait for the token.
	Deadline time.Time
}

// NewRequestID generates a new activation request id.
func NewRequestID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return RequestIDPrefix + strings.ToLower(id.String()), nil
}
