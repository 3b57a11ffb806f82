package core

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
	"time"
)

// Finalizer restores the terminal before crash output is printed
type Finalizer interface {
	Fini()
}

var (
	crashMu       sync.Mutex
	crashTerminal Finalizer
	crashDir      string
)

// SetCrashTerminal registers the screen to restore on crash; nil unregisters
func SetCrashTerminal(t Finalizer) {
	crashMu.Lock()
	crashTerminal = t
	crashMu.Unlock()
}

// SetCrashReportDir sets where HandleCrash writes its report; empty disables the file
func SetCrashReportDir(dir string) {
	crashMu.Lock()
	crashDir = dir
	crashMu.Unlock()
}

// WriteCrashReport writes reason, pending log entries and a stack trace to
// dir/crash-<timestamp>.txt and returns the file path
func WriteCrashReport(dir, reason string, entries []LogEntry, stack []byte) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create crash dir: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "nodegame crash report %s\n\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(&b, "Reason: %s\n", reason)
	if len(entries) > 0 {
		b.WriteString("\nLog:\n")
		for _, e := range entries {
			fmt.Fprintf(&b, "%s [%s] %s\n", e.Time.Format("15:04:05"), e.Level, e.Message)
		}
	}
	if len(stack) > 0 {
		fmt.Fprintf(&b, "\nStack Trace:\n%s\n", stack)
	}

	path := filepath.Join(dir, fmt.Sprintf("crash-%s.txt", time.Now().Format("20060102-150405")))
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("write crash report: %w", err)
	}
	return path, nil
}

// HandleCrash is the unified panic handler that resets the terminal, writes
// the crash report and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	term, dir := crashTerminal, crashDir
	crashMu.Unlock()

	// Restore terminal to sane state immediately
	if term != nil {
		term.Fini()
	}

	stack := debug.Stack()
	if dir != "" {
		if path, err := WriteCrashReport(dir, fmt.Sprint(r), nil, stack); err == nil {
			fmt.Fprintf(os.Stderr, "Crash report written to %s\n", path)
		}
	}

	fmt.Fprintf(os.Stderr, "\n\x1b[31mCRASH DETECTED: %v\x1b[0m\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", stack)
	os.Stderr.Sync()

	os.Exit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
