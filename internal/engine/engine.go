// Package engine defines the boundary between the configuration shim and a
// hybrid plant simulation engine. The shim only talks to these interfaces, so
// any engine (or a test fake) can sit behind it.
package engine

import (
	"context"

	"hybrid-sim/internal/model"
)

// Engine constructs sites and simulations from parameter mappings.
type Engine interface {
	NewSite(params map[string]any) (Site, error)
	// NewSimulation builds a runnable simulation from a normalized plant
	// configuration. plantCfg is plant-level configuration the engine may
	// use as it sees fit.
	NewSimulation(cfg map[string]any, plantCfg map[string]any) (Simulation, error)
}

// Site is a constructed site.
type Site interface {
	// DesiredSchedule returns the resolved hourly load schedule (MW), one
	// value per hour of the year.
	DesiredSchedule() []float64
}

// Simulation is a constructed, runnable hybrid plant.
type Simulation interface {
	Site() Site
	// SetSite replaces the site the simulation was built with.
	SetSite(Site)
	// Wave returns the wave technology when the plant has one.
	Wave() (WaveTechnology, bool)
	// Simulate runs the plant for projectLife years. It blocks until done.
	Simulate(ctx context.Context, projectLife int) error
	Plant() Plant
}

// WaveTechnology takes its cost inputs after construction.
type WaveTechnology interface {
	CreateCostCalculator(costInputs map[string]any) error
}

// Plant exposes simulation outputs.
type Plant interface {
	// Technology returns the outputs of one technology. ok is false when the
	// plant was not configured with it.
	Technology(kind model.TechKind) (out *model.TechOutputs, ok bool)
	Outputs() model.PlantOutputs
}
