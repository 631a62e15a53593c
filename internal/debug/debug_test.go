package debug

import (
	"bytes"
	"strings"
	"testing"
)

func captureDebug(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := SetOutput(&buf)
	SetNoColor(true)
	t.Cleanup(func() {
		SetDebug(false)
		SetOutput(prev)
	})
	return &buf
}

func TestSetDebug(t *testing.T) {
	SetDebug(false)
	if IsEnabled() {
		t.Error("Debug should be disabled initially")
	}

	SetDebug(true)
	if !IsEnabled() {
		t.Error("Debug should be enabled")
	}

	SetDebug(false)
	if IsEnabled() {
		t.Error("Debug should be disabled again")
	}
}

func TestDebugOutput(t *testing.T) {
	buf := captureDebug(t)
	SetDebug(true)

	Debug("test message %s", "arg")

	output := buf.String()
	if !strings.HasPrefix(output, "[DEBUG] ") {
		t.Errorf("Output should start with [DEBUG] prefix, got: %s", output)
	}
	if !strings.Contains(output, "test message arg") {
		t.Errorf("Output should contain message, got: %s", output)
	}
	if !strings.Contains(output, ":") {
		t.Errorf("Output should contain timestamp, got: %s", output)
	}
}

func TestDebugDisabled(t *testing.T) {
	buf := captureDebug(t)
	SetDebug(false)

	Debug("this should not appear")
	DebugSection("hidden")
	DebugValue("key", "value")
	DebugJSON("payload", map[string]int{"a": 1})

	if buf.Len() != 0 {
		t.Errorf("Debug output should be empty when disabled, got: %s", buf.String())
	}
}

func TestDebugSectionAndValue(t *testing.T) {
	buf := captureDebug(t)
	SetDebug(true)

	DebugSection("resolve")
	DebugValue("target", "demo")
	DebugJSON("selection", map[string]string{"name": "demo"})

	output := buf.String()
	for _, want := range []string{"=== resolve ===", "target = demo", "selection:", `"name": "demo"`} {
		if !strings.Contains(output, want) {
			t.Errorf("Output should contain %q, got: %s", want, output)
		}
	}
}
