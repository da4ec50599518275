package models

// SimulationRequest is the body of POST /api/v1/simulations.
type SimulationRequest struct {
	ProjectLifetime int `json:"project_lifetime" binding:"required,gt=0,lte=100"`
	// Config is the plant configuration: `site` and `technologies` mappings.
	Config map[string]any `json:"config" binding:"required"`
	// Plant is handed to the engine untouched (e.g. a finance block).
	Plant   map[string]any    `json:"plant,omitempty"`
	Options SimulationOptions `json:"options,omitempty"`
}

// SimulationOptions contains optional run parameters
type SimulationOptions struct {
	ZeroPad       bool `json:"zero_pad,omitempty"`
	IncludeSeries bool `json:"include_series,omitempty"` // default: false
}

// CompareRequest runs several variations of one base plant.
type CompareRequest struct {
	ProjectLifetime int              `json:"project_lifetime" binding:"required,gt=0,lte=100"`
	BaseConfig      map[string]any   `json:"base_config" binding:"required"`
	Plant           map[string]any   `json:"plant,omitempty"`
	Variations      []PlantVariation `json:"variations" binding:"required,min=1,dive"`
}

// PlantVariation overlays Config onto the base config. Overlay values win.
type PlantVariation struct {
	Name   string         `json:"name" binding:"required"`
	Config map[string]any `json:"config"`
}
