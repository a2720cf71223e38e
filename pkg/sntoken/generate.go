// Package sntoken builds and parses startup-notification activation tokens.
package sntoken

import (
	"os"
	"strconv"
)

// TimeMarker is the literal separating the launcher part from the
// timestamp.
const TimeMarker = "_TIME"

// FallbackHost is used when the hostname cannot be read from the
// operating environment.
const FallbackHost = "snotify"

// Generate composes a new activation token from the hostname, the process
// id, and the next process-wide timestamp.
//
// A hostname lookup failure falls back to FallbackHost rather than
// failing; the token stays well formed either way. Hostname and pid are
// used as reported by the OS, without sanitizing for whitespace or
// control characters.
func Generate() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = FallbackHost
	}
	return Compose(host, os.Getpid(), NextTimestamp())
}

// Compose builds a token from explicit parts. Callers that need
// deterministic tokens (or a private Seed) use this directly.
func Compose(host string, pid int, timestamp uint32) string {
	return host + strconv.Itoa(pid) + TimeMarker + strconv.FormatUint(uint64(timestamp), 10)
}
