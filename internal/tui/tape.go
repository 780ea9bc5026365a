// Package tui renders live phase and stage progress in the terminal.
package tui

import (
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/vito/progrock"
)

// Enabled reports whether the live view should run: opted in through the
// environment and attached to a terminal.
func Enabled() bool {
	return os.Getenv("SHIP_TUI") != "" && isatty.IsTerminal(os.Stderr.Fd())
}

// Tape buffers status updates between the telemetry recorder and the view.
// It is a progrock.Writer on the recorder side and a TapeSource on the view
// side.
type Tape struct {
	updates chan *progrock.StatusUpdate

	mu     sync.Mutex
	closed bool
}

// NewTape creates a new Tape.
func NewTape() *Tape {
	return &Tape{
		// A run produces a dozen vertices; the buffer only has to absorb
		// bursts while the view repaints.
		updates: make(chan *progrock.StatusUpdate, 256),
	}
}

// WriteStatus queues an update for the view. Updates written after Close,
// or while the buffer is full, are dropped rather than blocking a phase.
func (t *Tape) WriteStatus(update *progrock.StatusUpdate) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	select {
	case t.updates <- update:
	default:
	}
	return nil
}

// Close ends the stream; the view quits once it drains the buffer.
func (t *Tape) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.closed {
		t.closed = true
		close(t.updates)
	}
	return nil
}

// Read returns the next update, or io.EOF after Close.
func (t *Tape) Read() (*progrock.StatusUpdate, error) {
	update, ok := <-t.updates
	if !ok {
		return nil, io.EOF
	}
	return update, nil
}

var _ progrock.Writer = (*Tape)(nil)
