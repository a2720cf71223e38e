// Package sntoken builds and parses startup-notification activation tokens.
package sntoken

import (
	"errors"
	"strconv"
	"strings"
)

// ErrNoTimeMarker indicates the token does not contain the _TIME marker.
var ErrNoTimeMarker = errors.New("sntoken: token has no _TIME marker")

// ErrBadTimestamp indicates the text after the _TIME marker is not a
// decimal uint32.
var ErrBadTimestamp = errors.New("sntoken: malformed timestamp")

// Parse splits a token into its launcher part (hostname plus pid) and its
// timestamp.
//
// The split uses the last occurrence of the marker, since an unsanitized
// hostname may itself contain "_TIME".
func Parse(token string) (launcher string, timestamp uint32, err error) {
	i := strings.LastIndex(token, TimeMarker)
	if i < 0 {
		return "", 0, ErrNoTimeMarker
	}
	ts, err := strconv.ParseUint(token[i+len(TimeMarker):], 10, 32)
	if err != nil {
		return "", 0, ErrBadTimestamp
	}
	return token[:i], uint32(ts), nil
}
