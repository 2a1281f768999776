package ui

import (
	"bytes"
	"testing"
)

func TestError(t *testing.T) {
	var buf bytes.Buffer
	SetWriter(&buf)
	defer SetWriter(nil)
	SetColorEnabled(false)

	Error("no clusters found")

	if got := buf.String(); got != "Error: no clusters found\n" {
		t.Errorf("Error output = %q, want %q", got, "Error: no clusters found\n")
	}
}

func TestWarnf(t *testing.T) {
	var buf bytes.Buffer
	SetWriter(&buf)
	defer SetWriter(nil)
	SetColorEnabled(false)

	Warnf("credentials expire at %s", "12:00")

	want := "Warning: credentials expire at 12:00\n"
	if got := buf.String(); got != want {
		t.Errorf("Warnf output = %q, want %q", got, want)
	}
}

func TestBoldWithColor(t *testing.T) {
	SetColorEnabled(true)
	defer SetColorEnabled(false)

	if got := Bold("web"); got != "\033[1mweb\033[0m" {
		t.Errorf("Bold output = %q", got)
	}
}
