package output

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
)

// Pairs is ordered key/value data rendered as an aligned two-column
// listing by the text formatter.
type Pairs [][2]string

// Add appends a key/value pair.
func (p *Pairs) Add(key, value string) {
	*p = append(*p, [2]string{key, value})
}

// TextFormatter formats data as human-readable text.
type TextFormatter struct{}

// Format writes data to w. Pairs and string maps render as aligned
// key/value columns; everything else falls back to fmt.
func (f *TextFormatter) Format(w io.Writer, data any) error {
	switch v := data.(type) {
	case nil:
		return nil
	case Pairs:
		return renderPairs(w, v)
	case map[string]string:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make(Pairs, 0, len(keys))
		for _, k := range keys {
			pairs.Add(k, v[k])
		}
		return renderPairs(w, pairs)
	case string:
		_, err := fmt.Fprintln(w, v)
		return err
	default:
		_, err := fmt.Fprintf(w, "%+v\n", v)
		return err
	}
}

func renderPairs(w io.Writer, pairs Pairs) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, p := range pairs {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", p[0], p[1]); err != nil {
			return err
		}
	}
	return tw.Flush()
}
