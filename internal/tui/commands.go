package tui

import (
	"context"
	"errors"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vito/progrock"
)

// TapeSource is the view side of a Tape: a blocking stream of updates.
type TapeSource interface {
	Read() (*progrock.StatusUpdate, error)
}

// MsgTapeUpdate wraps the next raw update from the tape.
type MsgTapeUpdate struct {
	Update *progrock.StatusUpdate
}

// MsgTapeEnded is sent when the tape stream has ended.
type MsgTapeEnded struct{}

// WaitForTape returns a Bubble Tea command that reads the next update.
func WaitForTape(tape TapeSource) tea.Cmd {
	return func() tea.Msg {
		update, err := tape.Read()
		if err != nil {
			// io.EOF and transport errors both end the stream.
			return MsgTapeEnded{}
		}
		return MsgTapeUpdate{Update: update}
	}
}

// Run renders the progress view on stderr until the tape ends or the context
// is canceled.
func Run(ctx context.Context, tape TapeSource) error {
	program := tea.NewProgram(
		NewModel(tape),
		tea.WithContext(ctx),
		tea.WithOutput(os.Stderr),
		tea.WithInput(nil),
	)
	_, err := program.Run()
	if err != nil && (errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, io.EOF)) {
		return nil
	}
	return err
}
