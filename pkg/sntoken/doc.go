// Package sntoken builds and parses startup-notification activation tokens.
//
// This package implements the token format recommended by the
// freedesktop.org startup-notification specification.
//
// Token Format:
//
//   - Launcher part: hostname followed by the process id
//   - Literal marker: _TIME
//   - Timestamp: decimal uint32 from a process-wide xorshift32 source
//
// Example: workstation4217_TIME3735928559
//
// Uniqueness:
//
//   - The timestamp source is deterministic, not cryptographic; its only
//     job is novelty within a process lifetime
//   - xorshift32 has period 2^32-1 over non-zero seeds, so repeated calls
//     never repeat a timestamp before wrapping
package sntoken
