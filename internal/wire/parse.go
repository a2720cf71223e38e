// Package wire implements the startup-notification message format.
package wire

import (
	"strings"

	"github.com/yndnr/snotify-go/internal/core/domain"
)

// Message is a parsed startup-notification message.
type Message struct {
	Verb   string
	Params map[string]string
}

// ID returns the activation token the message refers to.
func (m *Message) ID() string {
	return m.Params["ID"]
}

// Parse decodes a serialized message back into verb and parameters.
// A trailing null terminator is accepted and ignored.
func Parse(raw []byte) (*Message, error) {
	s := string(raw)
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}

	colon := strings.IndexByte(s, ':')
	if colon <= 0 {
		return nil, domain.ErrMessageMalformed.WithDetails("missing verb")
	}

	msg := &Message{
		Verb:   s[:colon],
		Params: make(map[string]string),
	}

	rest := s[colon+1:]
	for {
		rest = strings.TrimLeft(rest, " ")
		if rest == "" {
			break
		}

		eq := strings.IndexByte(rest, '=')
		if eq <= 0 {
			return nil, domain.ErrMessageMalformed.WithDetails("parameter without '='")
		}
		key := rest[:eq]
		rest = rest[eq+1:]

		value, remain, err := scanValue(rest)
		if err != nil {
			return nil, err
		}
		msg.Params[key] = value
		rest = remain
	}

	return msg, nil
}

// scanValue reads one parameter value, honoring the quoting rules used by
// escapeValue, and returns the unread remainder.
func scanValue(s string) (value, rest string, err error) {
	if s == "" {
		return "", "", nil
	}

	if s[0] != '"' {
		if i := strings.IndexByte(s, ' '); i >= 0 {
			return s[:i], s[i+1:], nil
		}
		return s, "", nil
	}

	var b strings.Builder
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
			if i >= len(s) {
				return "", "", domain.ErrMessageMalformed.WithDetails("dangling escape")
			}
			b.WriteByte(s[i])
		case '"':
			return b.String(), s[i+1:], nil
		default:
			b.WriteByte(s[i])
		}
	}
	return "", "", domain.ErrMessageMalformed.WithDetails("unterminated quoted value")
}
