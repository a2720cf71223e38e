package output

import (
	"encoding/json"
	"io"
)

// JSONFormatter formats data as JSON. Compact emits single-line
// objects, suitable for streaming one event per line.
type JSONFormatter struct {
	Compact bool
}

// Format writes data to w as JSON.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	if !f.Compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(data)
}
