package ports

// ElevationChecker reports whether the current session has administrative
// privileges. Full test coverage needs them.
//
//go:generate go run go.uber.org/mock/mockgen -source=privilege.go -destination=mocks/mock_privilege.go -package=mocks
type ElevationChecker interface {
	Elevated() (bool, error)
}
