// Package progrock provides the Progrock implementation of the telemetry adapter.
package progrock

import (
	"context"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"

	"go.trai.ch/ship/internal/core/ports"
	"go.trai.ch/ship/internal/tui"
)

// Recorder implements ports.Telemetry on top of a progrock tape. Every
// pipeline phase and packaging stage becomes one vertex, keyed by the
// digest of its name so repeated runs reuse the same vertex identity.
type Recorder struct {
	w       progrock.Writer
	rec     *progrock.Recorder
	display *tui.Tape
}

// New creates a Recorder with a default tape.
func New() *Recorder {
	return NewRecorder(progrock.NewTape())
}

// NewRecorder creates a Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// NewDisplay creates a Recorder feeding the live progress view.
func NewDisplay(tape *tui.Tape) *Recorder {
	r := NewRecorder(tape)
	r.display = tape
	return r
}

// Display returns the view tape, or nil when the recorder is headless.
func (r *Recorder) Display() *tui.Tape {
	return r.display
}

// Record starts recording a new vertex.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	d := digest.FromString(name)
	return ctx, &Vertex{vertex: r.rec.Vertex(d, name)}
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

var _ ports.Telemetry = (*Recorder)(nil)
