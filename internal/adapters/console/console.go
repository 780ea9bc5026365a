// Package console prints colored status lines for pipeline phases and
// packaging stages.
package console

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mitchellh/colorstring"

	"go.trai.ch/ship/internal/core/ports"
)

// Console implements ports.Console using colorstring markup.
type Console struct {
	mu  sync.Mutex
	out io.Writer
	col *colorstring.Colorize
}

// New creates a Console writing to stderr with colors enabled.
func New() *Console {
	return NewWithWriter(os.Stderr, false)
}

// NewWithWriter creates a Console writing to w. When disableColor is set the
// markup is stripped instead of rendered, for non-TTY output.
func NewWithWriter(w io.Writer, disableColor bool) *Console {
	return &Console{
		out: w,
		col: &colorstring.Colorize{
			Colors:  colorstring.DefaultColors,
			Disable: disableColor,
			Reset:   true,
		},
	}
}

// Step announces the start of a phase or stage.
func (c *Console) Step(format string, args ...any) {
	c.print("[blue][bold]==>[reset] " + fmt.Sprintf(format, args...))
}

// Success reports a completed phase or stage.
func (c *Console) Success(format string, args ...any) {
	c.print("[green][bold]  ->[reset] " + fmt.Sprintf(format, args...))
}

// Failure reports a failed phase or stage.
func (c *Console) Failure(format string, args ...any) {
	c.print("[red][bold]  ->[reset] [red]" + fmt.Sprintf(format, args...))
}

func (c *Console) print(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintln(c.out, c.col.Color(line))
}

var _ ports.Console = (*Console)(nil)
