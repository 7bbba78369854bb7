package debug

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

var (
	enabled   bool
	enabledMu sync.RWMutex
	noColor   bool
	noColorMu sync.RWMutex

	// out is replaced in tests.
	out   io.Writer = os.Stderr
	outMu sync.Mutex
)

var (
	tagColor  = color.New(color.FgCyan)
	timeColor = color.New(color.FgHiBlack)
)

// SetDebug enables or disables debug mode
func SetDebug(enable bool) {
	enabledMu.Lock()
	defer enabledMu.Unlock()
	enabled = enable
}

// IsEnabled returns whether debug mode is enabled
func IsEnabled() bool {
	enabledMu.RLock()
	defer enabledMu.RUnlock()
	return enabled
}

// SetNoColor enables or disables colored output
func SetNoColor(disable bool) {
	noColorMu.Lock()
	defer noColorMu.Unlock()
	noColor = disable
}

// SetOutput redirects debug output. A nil writer restores stderr.
func SetOutput(w io.Writer) {
	outMu.Lock()
	defer outMu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	out = w
}

func useColor() bool {
	noColorMu.RLock()
	defer noColorMu.RUnlock()
	return !noColor
}

// emit writes one debug line. The prefix is "[DEBUG] <timestamp>".
func emit(body string) {
	timestamp := time.Now().Format("15:04:05.000")

	outMu.Lock()
	defer outMu.Unlock()

	if useColor() {
		tagColor.EnableColor()
		timeColor.EnableColor()
		fmt.Fprintf(out, "%s %s %s\n", tagColor.Sprint("[DEBUG]"), timeColor.Sprint(timestamp), body)
		return
	}
	fmt.Fprintf(out, "[DEBUG] %s %s\n", timestamp, body)
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
	header := fmt.Sprintf("=== %s ===", section)
	if useColor() {
		header = tagColor.Sprint(header)
	}
	emit(header)
}

// DebugValue prints key=value style debug info
func DebugValue(key string, value interface{}) {
	if !IsEnabled() {
		return
	}
	if useColor() {
		key = tagColor.Sprint(key)
	}
	emit(fmt.Sprintf("%s = %v", key, value))
}

// DebugYAML prints structured data as YAML for debugging. Slide field sets
// and parsed configuration are dumped in the same format they are written in.
func DebugYAML(key string, v interface{}) {
	if !IsEnabled() {
		return
	}

	data, err := yaml.Marshal(v)
	if err != nil {
		Debug("Failed to marshal %s to YAML: %v", key, err)
		return
	}

	if useColor() {
		key = tagColor.Sprint(key)
	}
	emit(fmt.Sprintf("%s:\n%s", key, string(data)))
}
