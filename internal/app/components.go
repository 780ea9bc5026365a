package app

import (
	"go.trai.ch/ship/internal/core/ports"
)

// Components contains the initialized application components the CLI layer
// needs access to.
type Components struct {
	App       *App
	Logger    ports.Logger
	Telemetry ports.Telemetry
}
