// Package domain contains the core domain models for release and packaging plans.
package domain

// Command is a single external invocation performed by a phase or stage.
// Exactly one of Argv and Script is set: Argv is executed directly, Script is
// interpreted as a POSIX shell snippet.
type Command struct {
	Argv   []string
	Script string
	Dir    string
	Env    map[string]string
}

// IsZero reports whether the command has nothing to run.
func (c Command) IsZero() bool {
	return len(c.Argv) == 0 && c.Script == ""
}

// Toolchain describes the compiler toolchain the release pipeline drives.
type Toolchain struct {
	// Launcher is the binary that must be present on PATH (e.g. "cargo").
	Launcher string

	// Version pins the toolchain release for the whole run.
	Version string

	// Target is the target triple the release binary is built for.
	Target string

	// Setup holds the commands that select the pinned version and install
	// target support. They run after the presence check.
	Setup []Command
}

// SignSpec configures the optional signing phase.
type SignSpec struct {
	// Tool is the external signing helper invoked against the artifact.
	Tool string

	// CredentialDir is the fixed, access-restricted directory the credential
	// file parameter is resolved against.
	CredentialDir string
}

// ReleasePlan describes the release pipeline: an ordered sequence of hard
// gates that produces a signed-or-unsigned binary in the publish directory.
type ReleasePlan struct {
	Toolchain Toolchain

	// Env is exported for every phase command (backtrace flags, assertion
	// pins and the like).
	Env map[string]string

	// StaleProcesses are process names terminated best effort before the
	// build so they do not hold the previous output open.
	StaleProcesses []string

	// Artifact is the binary produced by the build phase, relative to the
	// working directory.
	Artifact string

	// PublishDir is the shared artifact directory the binary is copied to.
	PublishDir string

	Lint  []Command
	Build []Command
	Test  []Command

	// TestWorkers bounds test parallelism. Zero means the default of 4.
	TestWorkers int

	// RequireElevation aborts before the test phase when the session lacks
	// administrative privileges.
	RequireElevation bool

	Sign SignSpec
}

// MirrorSpec describes a tree synchronization: copy changed files from
// Source into Dest preserving modification times.
type MirrorSpec struct {
	Source string
	Dest   string

	// Delete removes files under Dest that no longer exist under Source.
	Delete bool
}

// CompileSpec describes the cache precompilation performed by the finalize
// stage: every source matching Pattern under Root is compiled once per
// optimization level, skipped when its content hash is unchanged.
type CompileSpec struct {
	// Root is the staged tree the sources live under.
	Root string

	// Pattern matches source file names (e.g. "*.py").
	Pattern string

	// Levels are the optimization levels to produce. Empty means 0, 1, 2.
	Levels []int

	// CacheDir is the per-directory cache subdirectory name.
	CacheDir string

	// Command is the compiler argv template. The placeholders {source},
	// {dest} and {level} are substituted per invocation.
	Command []string
}

// StageSpec describes one packaging stage and its position in the chain.
type StageSpec struct {
	Name      string
	DependsOn []string

	// Commands run first, through the shell executor.
	Commands []Command

	// Env applies to every command of this stage.
	Env map[string]string

	// Mirror, when set, synchronizes a tree after the commands.
	Mirror *MirrorSpec

	// BinDirs are directories (relative to the mirror destination) whose
	// files get executable permission forced after mirroring.
	BinDirs []string

	// Compile, when set, runs the cache precompilation for this stage.
	Compile *CompileSpec

	// Jobs bounds Compile parallelism. Zero means unbounded.
	Jobs int
}

// PackagePlan describes the packaging stage chain.
type PackagePlan struct {
	// Root is the working directory for all stages.
	Root string

	Stages []StageSpec
}

// Plan is the complete configuration loaded from the plan file.
type Plan struct {
	Version string
	Release *ReleasePlan
	Package *PackagePlan
}
