package models

import (
	"hybrid-sim/internal/analysis"
	"hybrid-sim/internal/model"
)

// SimulationResponse represents the response from a simulation run
type SimulationResponse struct {
	ID      string            `json:"id,omitempty"`
	Status  string            `json:"status"`
	Summary SimulationSummary `json:"summary"`
	Series  *SeriesResponse   `json:"series,omitempty"`
}

// SimulationSummary contains the aggregated record of a run.
// LCOE values are cents/kWh; money is $.
type SimulationSummary struct {
	Capex       float64 `json:"capex"`
	Opex        float64 `json:"opex"`
	HybridNPV   float64 `json:"hybrid_npv"`
	LCOEReal    float64 `json:"lcoe"`
	LCOENominal float64 `json:"lcoe_nom"`

	AnnualEnergies  model.Breakdown `json:"annual_energies"`
	CapacityFactors model.Breakdown `json:"capacity_factors"`
	NPVs            model.Breakdown `json:"npvs"`

	Power       analysis.SeriesStats `json:"combined_power"`
	Curtailment analysis.SeriesStats `json:"curtailment"`
	Shortfall   analysis.SeriesStats `json:"energy_shortfall"`

	Technologies map[model.TechKind]*model.TechOutputs `json:"technologies"`
}

// SeriesResponse holds the year-one hourly series of a run (kW).
type SeriesResponse struct {
	CombinedPowerProduction []float64 `json:"combined_hybrid_power_production"`
	CombinedCurtailment     []float64 `json:"combined_hybrid_curtailment"`
	EnergyShortfall         []float64 `json:"energy_shortfall"`
	BatteryDispatchKW       []float64 `json:"battery_dispatch_kw,omitempty"`
}

// CompareResponse represents the response from a comparison
type CompareResponse struct {
	Comparison []ComparisonResult `json:"comparison"`
}

// ComparisonResult contains results for one variation. Failed variations
// carry Error and no summary.
type ComparisonResult struct {
	Name    string             `json:"name"`
	ID      string             `json:"id,omitempty"`
	Summary *SimulationSummary `json:"summary,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// TechnologyInfo describes a technology block a plant config may carry.
type TechnologyInfo struct {
	Kind        model.TechKind  `json:"kind"`
	Description string          `json:"description"`
	Generates   bool            `json:"generates"`
	Costed      bool            `json:"costed"`
	Parameters  []ParameterInfo `json:"parameters"`
}

// ParameterInfo describes a technology parameter
type ParameterInfo struct {
	Name        string `json:"name"`
	Type        string `json:"type"` // "float", "int", "mapping"
	Description string `json:"description"`
	Default     any    `json:"default,omitempty"`
}

// PresetInfo represents a technology preset file
type PresetInfo struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Kind   model.TechKind `json:"kind"`
	File   string         `json:"file"`
	Params map[string]any `json:"params"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
