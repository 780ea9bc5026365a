package ports

// ToolchainLocator detects whether the toolchain launcher is available.
//
//go:generate go run go.uber.org/mock/mockgen -source=toolchain.go -destination=mocks/mock_toolchain.go -package=mocks
type ToolchainLocator interface {
	// Locate returns the absolute path of the launcher binary, searching
	// the directories named by PATH.
	Locate(launcher string) (string, error)
}
