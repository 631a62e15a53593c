// Package debug writes timestamped diagnostic lines when --debug is set.
package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/tacogips/kickstart/internal/render"
)

var (
	mu      sync.RWMutex
	enabled bool
	noColor bool
	out     io.Writer = os.Stderr
	palette           = render.New(os.Stderr, false)
)

// SetDebug enables or disables debug mode
func SetDebug(enable bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = enable
}

// IsEnabled returns whether debug mode is enabled
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetNoColor enables or disables colored output
func SetNoColor(disable bool) {
	mu.Lock()
	defer mu.Unlock()
	noColor = disable
	palette = render.New(out, noColor)
}

// SetOutput redirects debug output. It returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	palette = render.New(out, noColor)
	return prev
}

// Debug prints a debug message with timestamp
func Debug(format string, args ...interface{}) {
	if !IsEnabled() {
		return
	}
	emit(fmt.Sprintf(format, args...))
}

// DebugSection prints a section header for debug output
func DebugSection(section string) {
	if !IsEnabled() {
		return
	}
	mu.RLock()
	p := palette
	mu.RUnlock()
	emit(p.Emphasis("=== " + section + " ==="))
}

// DebugValue prints key=value style debug info
func DebugValue(key string, value interface{}) {
	if !IsEnabled() {
		return
	}
	mu.RLock()
	p := palette
	mu.RUnlock()
	emit(fmt.Sprintf("%s = %v", p.Emphasis(key), value))
}

// DebugJSON prints structured data as JSON for debugging
func DebugJSON(key string, v interface{}) {
	if !IsEnabled() {
		return
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		Debug("Failed to marshal %s to JSON: %v", key, err)
		return
	}
	emit(fmt.Sprintf("%s:\n%s", key, data))
}

func emit(msg string) {
	mu.RLock()
	defer mu.RUnlock()
	if !enabled {
		return
	}
	timestamp := time.Now().Format("15:04:05.000")
	fmt.Fprintf(out, "%s %s %s\n", palette.Tag("DEBUG"), palette.Muted(timestamp), msg)
}
