package main

import (
	"fmt"
	"os"
	"sync/atomic"
)

// terminalNotifier prints transient notices the way the browser client
// flashed them on screen.
type terminalNotifier struct{}

func (terminalNotifier) Success(msg string) {
	fmt.Fprintf(os.Stderr, "✅ %s\n", msg)
}

func (terminalNotifier) Error(msg string) {
	fmt.Fprintf(os.Stderr, "❌ %s\n", msg)
}

// terminalNavigator stands in for the login redirect.
type terminalNavigator struct{}

func (terminalNavigator) ToLogin() {
	fmt.Fprintln(os.Stderr, "→ run 'mianshictl login' to authenticate")
}

// loadingIndicator tracks the process-wide in-flight flag, the terminal
// counterpart of the browser client's global loading state.
type loadingIndicator struct {
	active atomic.Bool
}

func newLoadingIndicator() *loadingIndicator {
	return &loadingIndicator{}
}

func (l *loadingIndicator) SetLoading(active bool) {
	l.active.Store(active)
}
