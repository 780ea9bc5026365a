package config

// Shipfile represents the structure of the ship.yaml plan file.
type Shipfile struct {
	Version string      `yaml:"version"`
	Release *ReleaseDTO `yaml:"release"`
	Package *PackageDTO `yaml:"package"`
}

// CommandDTO represents one external invocation in the configuration.
type CommandDTO struct {
	Argv   []string          `yaml:"argv"`
	Script string            `yaml:"script"`
	Dir    string            `yaml:"dir"`
	Env    map[string]string `yaml:"env"`
}

// ToolchainDTO represents the toolchain section of a release plan.
type ToolchainDTO struct {
	Launcher string       `yaml:"launcher"`
	Version  string       `yaml:"version"`
	Target   string       `yaml:"target"`
	Setup    []CommandDTO `yaml:"setup"`
}

// SignDTO represents the signing section of a release plan.
type SignDTO struct {
	Tool          string `yaml:"tool"`
	CredentialDir string `yaml:"credentialDir"`
}

// ReleaseDTO represents the release pipeline definition.
type ReleaseDTO struct {
	Toolchain        ToolchainDTO      `yaml:"toolchain"`
	Env              map[string]string `yaml:"env"`
	StaleProcesses   []string          `yaml:"staleProcesses"`
	Artifact         string            `yaml:"artifact"`
	PublishDir       string            `yaml:"publishDir"`
	Lint             []CommandDTO      `yaml:"lint"`
	Build            []CommandDTO      `yaml:"build"`
	Test             []CommandDTO      `yaml:"test"`
	TestWorkers      int               `yaml:"testWorkers"`
	RequireElevation *bool             `yaml:"requireElevation"`
	Sign             SignDTO           `yaml:"sign"`
}

// MirrorDTO represents a tree synchronization step.
type MirrorDTO struct {
	Source string `yaml:"source"`
	Dest   string `yaml:"dest"`
	Delete bool   `yaml:"delete"`
}

// CompileDTO represents the cache precompilation settings of a stage.
type CompileDTO struct {
	Root     string   `yaml:"root"`
	Pattern  string   `yaml:"pattern"`
	Levels   []int    `yaml:"levels"`
	CacheDir string   `yaml:"cacheDir"`
	Command  []string `yaml:"command"`
}

// StageDTO represents one packaging stage.
type StageDTO struct {
	Name      string            `yaml:"name"`
	DependsOn []string          `yaml:"dependsOn"`
	Commands  []CommandDTO      `yaml:"commands"`
	Env       map[string]string `yaml:"env"`
	Mirror    *MirrorDTO        `yaml:"mirror"`
	BinDirs   []string          `yaml:"binDirs"`
	Compile   *CompileDTO       `yaml:"compile"`
	Jobs      int               `yaml:"jobs"`
}

// PackageDTO represents the packaging stage chain.
type PackageDTO struct {
	Root   string     `yaml:"root"`
	Stages []StageDTO `yaml:"stages"`
}
