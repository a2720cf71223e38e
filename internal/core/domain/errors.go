// Package domain defines the core domain models for snotify.
package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a protocol-engine error with a structured error
// code. Codes group by subsystem: SN-XPT (display transport), SN-PROTO
// (protocol availability), SN-WIRE (message framing).
type DomainError struct {
	Code    string // Error code (e.g., "SN-XPT-4040")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support; two DomainErrors match on Code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ============================================================================
// Transport Errors (XPT)
// ============================================================================

var (
	// ErrNoDisplay indicates the display server connection could not be
	// established or has been severed.
	ErrNoDisplay = NewDomainError("SN-XPT-5020", "display connection unavailable")

	// ErrWindowGone indicates an operation referenced a window id that does
	// not exist on the connection (destroyed or never created).
	ErrWindowGone = NewDomainError("SN-XPT-4040", "no such window")

	// ErrProxyCreate indicates the throwaway proxy window could not be
	// created on the display connection.
	ErrProxyCreate = NewDomainError("SN-XPT-5001", "proxy window creation failed")

	// ErrEventSend indicates a chunk client-message send was rejected
	// locally by the connection.
	ErrEventSend = NewDomainError("SN-XPT-5002", "client message send failed")

	// ErrPropertySet indicates a window property change was rejected.
	ErrPropertySet = NewDomainError("SN-XPT-5003", "window property change failed")
)

// ============================================================================
// Protocol Errors (PROTO)
// ============================================================================

var (
	// ErrProtocolUnsupported indicates the platform does not carry the
	// startup-notification protocol. Recoverable: windows stay usable
	// without activation semantics.
	ErrProtocolUnsupported = NewDomainError("SN-PROTO-5010", "startup notification protocol unsupported")

	// ErrNoPendingRequest indicates a token completion referenced a window
	// with no pending activation request.
	ErrNoPendingRequest = NewDomainError("SN-PROTO-4041", "no pending activation request")
)

// ============================================================================
// Wire Errors (WIRE)
// ============================================================================

var (
	// ErrMessageMalformed indicates an inbound startup-notification
	// message could not be parsed.
	ErrMessageMalformed = NewDomainError("SN-WIRE-4000", "malformed startup notification message")

	// ErrMessageTruncated indicates a chunk sequence ended before the
	// message's null terminator was seen.
	ErrMessageTruncated = NewDomainError("SN-WIRE-4001", "truncated startup notification message")
)
