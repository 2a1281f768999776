package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestInitDefaultSuppressesDebug(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Stderr: &buf})

	Debug("hidden")
	Warn("shown", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message leaked without verbose: %s", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "key=value") {
		t.Errorf("expected warning with attrs, got: %s", out)
	}
}

func TestInitVerboseJSON(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Verbose: true, JSONFormat: true, Stderr: &buf})

	Debug("resolving cluster", "cluster", "prod")

	out := buf.String()
	if !strings.Contains(out, `"msg":"resolving cluster"`) {
		t.Errorf("expected JSON debug record, got: %s", out)
	}
	if !strings.Contains(out, `"cluster":"prod"`) {
		t.Errorf("expected cluster attribute, got: %s", out)
	}
}
