package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/mjmerge/internal/logging"
	"golang.org/x/term"
)

// SignalContext is a context cancelled on SIGINT or SIGTERM that remembers
// which signal stopped it.
type SignalContext struct {
	context.Context
	Cancel context.CancelFunc

	signals chan os.Signal
	mu      sync.Mutex
	caught  os.Signal
}

// NewSignalContext works like signal.NotifyContext, plus Signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		signals: make(chan os.Signal, 1),
	}
	signal.Notify(sc.signals, os.Interrupt, syscall.SIGTERM)
	go sc.wait()
	return sc
}

func (sc *SignalContext) wait() {
	defer signal.Stop(sc.signals)
	select {
	case sig := <-sc.signals:
		sc.mu.Lock()
		sc.caught = sig
		sc.mu.Unlock()
		sc.Cancel()
	case <-sc.Done():
	}
}

// Signal returns the signal that cancelled the context, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.caught
}

// createLogger configures the application logger.
// Warnings (merge conflicts) are always shown; debug adds per-model progress.
func createLogger(debug bool) *slog.Logger {
	return logging.New(logging.Level(debug))
}

// printSystemMessage prints a standardized system message to w.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
