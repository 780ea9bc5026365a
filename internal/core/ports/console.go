package ports

// Console prints colored status lines for the operator, separate from the
// structured log stream.
//
//go:generate go run go.uber.org/mock/mockgen -source=console.go -destination=mocks/mock_console.go -package=mocks
type Console interface {
	// Step announces the start of a phase or stage.
	Step(format string, args ...any)

	// Success reports a completed phase or stage.
	Success(format string, args ...any)

	// Failure reports a failed phase or stage.
	Failure(format string, args ...any)
}
