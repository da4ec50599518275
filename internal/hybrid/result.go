package hybrid

import (
	"hybrid-sim/internal/engine"
	"hybrid-sim/internal/model"
)

// Result is the flat record produced by one simulation run.
//
// Capex and Opex sum only the solar, wind and battery technologies that were
// present; an absent technology contributes zero.
type Result struct {
	Simulation engine.Simulation `json:"-"`
	Plant      engine.Plant      `json:"-"`

	// CombinedPowerProduction is year-one pre-interconnect output, kW per hour.
	CombinedPowerProduction []float64 `json:"combined_hybrid_power_production"`
	CombinedCurtailment     []float64 `json:"combined_hybrid_curtailment"`
	EnergyShortfall         []float64 `json:"energy_shortfall"`

	AnnualEnergies  model.Breakdown `json:"annual_energies"`
	CapacityFactors model.Breakdown `json:"capacity_factors"`
	HybridNPV       float64         `json:"hybrid_npv"`
	NPVs            model.Breakdown `json:"npvs"`

	// LCOE in cents/kWh.
	LCOEReal    float64 `json:"lcoe"`
	LCOENominal float64 `json:"lcoe_nom"`

	Capex float64 `json:"capex"`
	Opex  float64 `json:"opex"`
}
