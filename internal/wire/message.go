// Package wire implements the startup-notification message format.
package wire

import (
	"strconv"
	"strings"
)

// Message verbs defined by the startup-notification specification.
const (
	VerbNew    = "new"
	VerbChange = "change"
	VerbRemove = "remove"
)

// RemoveMessage serializes the startup-complete announcement for a token.
//
// The byte layout is fixed by the wire format: the token is embedded
// verbatim, without quoting, followed by the null terminator.
func RemoveMessage(token string) []byte {
	buf := make([]byte, 0, len("remove: ID=")+len(token)+1)
	buf = append(buf, "remove: ID="...)
	buf = append(buf, token...)
	buf = append(buf, 0)
	return buf
}

// NewMessage serializes the launch announcement for a token. Name is the
// launchee description shown by monitors; screen selects the display
// screen the launch targets.
func NewMessage(token, name string, screen int) []byte {
	var b strings.Builder
	b.WriteString("new: ID=")
	b.WriteString(escapeValue(token))
	b.WriteString(" NAME=")
	b.WriteString(escapeValue(name))
	b.WriteString(" SCREEN=")
	b.WriteString(strconv.Itoa(screen))

	buf := append([]byte(b.String()), 0)
	return buf
}

// escapeValue applies the specification's quoting rules: backslash and
// double quote are backslash-escaped, and any value containing a space
// (or an escape) is wrapped in double quotes.
func escapeValue(v string) string {
	needQuotes := strings.ContainsAny(v, " \"\\")
	if !needQuotes {
		return v
	}

	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(v); i++ {
		switch v[i] {
		case '"', '\\':
			b.WriteByte('\\')
		}
		b.WriteByte(v[i])
	}
	b.WriteByte('"')
	return b.String()
}
