package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewFormatter(t *testing.T) {
	if _, ok := NewFormatter(FormatJSON).(*JSONFormatter); !ok {
		t.Error("expected JSONFormatter for json format")
	}
	if _, ok := NewFormatter(FormatText).(*TextFormatter); !ok {
		t.Error("expected TextFormatter for text format")
	}
	if _, ok := NewFormatter("bogus").(*TextFormatter); !ok {
		t.Error("expected TextFormatter fallback for unknown format")
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &JSONFormatter{}
	if err := f.Format(&buf, map[string]string{"token": "abc_TIME1"}); err != nil {
		t.Fatalf("Format: %v", err)
	}
	var got map[string]string
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if got["token"] != "abc_TIME1" {
		t.Errorf("token = %q, want %q", got["token"], "abc_TIME1")
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Error("expected indented output without Compact")
	}
}

func TestJSONFormatter_Compact(t *testing.T) {
	var buf bytes.Buffer
	f := &JSONFormatter{Compact: true}
	if err := f.Format(&buf, map[string]int{"n": 1}); err != nil {
		t.Fatalf("Format: %v", err)
	}
	if got := buf.String(); got != "{\"n\":1}\n" {
		t.Errorf("compact output = %q", got)
	}
}

func TestTextFormatter_Pairs(t *testing.T) {
	var pairs Pairs
	pairs.Add("launcher", "host123")
	pairs.Add("timestamp", "42")

	var buf bytes.Buffer
	if err := (&TextFormatter{}).Format(&buf, pairs); err != nil {
		t.Fatalf("Format: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "launcher") || !strings.Contains(lines[0], "host123") {
		t.Errorf("first line = %q", lines[0])
	}
}

func TestTextFormatter_MapSorted(t *testing.T) {
	var buf bytes.Buffer
	data := map[string]string{"b": "2", "a": "1"}
	if err := (&TextFormatter{}).Format(&buf, data); err != nil {
		t.Fatalf("Format: %v", err)
	}
	if strings.Index(buf.String(), "a") > strings.Index(buf.String(), "b") {
		t.Errorf("map keys not sorted: %q", buf.String())
	}
}

func TestTextFormatter_String(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TextFormatter{}).Format(&buf, "hello"); err != nil {
		t.Fatalf("Format: %v", err)
	}
	if buf.String() != "hello\n" {
		t.Errorf("got %q", buf.String())
	}
}
