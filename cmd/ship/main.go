// Package main is the entry point for the ship release driver.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/ship/cmd/ship/commands"
	"go.trai.ch/ship/internal/adapters/telemetry/progrock"
	"go.trai.ch/ship/internal/app"
	"go.trai.ch/ship/internal/core/domain"
	"go.trai.ch/ship/internal/tui"
	_ "go.trai.ch/ship/internal/wiring"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available if initialization failed.
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}
	// With SHIP_TUI set and a terminal attached, the recorder feeds a live
	// progress view instead of the plain console.
	var display bool
	viewDone := make(chan struct{})
	if rec, ok := components.Telemetry.(*progrock.Recorder); ok && rec.Display() != nil {
		display = true
		go func() {
			defer close(viewDone)
			if err := tui.Run(ctx, rec.Display()); err != nil {
				components.Logger.Error(err)
			}
		}()
	} else {
		close(viewDone)
	}

	cli := commands.New(components.App)
	cli.SetArgs(args)

	err = cli.Execute(ctx)

	if display {
		// End the update stream and wait for the view's last frame.
		_ = components.Telemetry.Close()
		<-viewDone
	}

	if err != nil {
		// zerr prints a report with the stack trace and metadata for %+v.
		_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err)
		return domain.ExitCodeFor(err)
	}
	return domain.ExitSuccess
}
