// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/ship/internal/adapters/cas"
	_ "go.trai.ch/ship/internal/adapters/config"
	_ "go.trai.ch/ship/internal/adapters/console"
	_ "go.trai.ch/ship/internal/adapters/fs"
	_ "go.trai.ch/ship/internal/adapters/logger"
	_ "go.trai.ch/ship/internal/adapters/priv"
	_ "go.trai.ch/ship/internal/adapters/proc"
	_ "go.trai.ch/ship/internal/adapters/shell"
	_ "go.trai.ch/ship/internal/adapters/sign"
	_ "go.trai.ch/ship/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/ship/internal/adapters/toolchain"
	// Register app and engine nodes.
	_ "go.trai.ch/ship/internal/app"
	_ "go.trai.ch/ship/internal/engine/packager"
	_ "go.trai.ch/ship/internal/engine/pipeline"
)
