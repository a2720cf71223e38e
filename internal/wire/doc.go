// Package wire implements the startup-notification message format.
//
// This package covers both directions of the protocol:
//
//   - Building launch lifecycle messages ("new:", "remove:") with the
//     quoting rules the freedesktop.org startup-notification
//     specification defines
//   - Splitting a serialized message into the fixed 20-byte chunks the
//     client-message transport carries, and reassembling them
//   - Parsing inbound messages back into verb and key/value parameters
//
// Everything here is pure and deterministic: no IO, no display
// connection, no failure modes beyond malformed inbound bytes.
package wire
