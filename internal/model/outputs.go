package model

// Breakdown is a per-technology figure plus the combined plant figure.
type Breakdown struct {
	ByTech map[TechKind]float64 `json:"by_tech"`
	Hybrid float64              `json:"hybrid"`
}

func NewBreakdown() Breakdown {
	return Breakdown{ByTech: map[TechKind]float64{}}
}

// Get returns the value for kind, or zero when the technology is absent.
func (b Breakdown) Get(kind TechKind) float64 {
	return b.ByTech[kind]
}

// PlantOutputs holds the plant-level aggregates produced by a simulation run.
//
// PreInterconnectKWAC has one value per simulated hour across the whole project
// life; the other hourly series cover year one only.
type PlantOutputs struct {
	PreInterconnectKWAC []float64 `json:"pre_interconnect_kwac"`
	GenerationCurtailed []float64 `json:"generation_curtailed"`
	MissedLoad          []float64 `json:"missed_load"`
	// BatteryDispatchKW is year-one battery power, positive when discharging.
	// Empty without a battery.
	BatteryDispatchKW []float64 `json:"battery_dispatch_kw,omitempty"`

	AnnualEnergies   Breakdown `json:"annual_energies"`
	NetPresentValues Breakdown `json:"net_present_values"`
	CapacityFactors  Breakdown `json:"capacity_factors"`

	// LCOE figures are in cents/kWh.
	LCOEReal    float64 `json:"lcoe_real"`
	LCOENominal float64 `json:"lcoe_nom"`
}
