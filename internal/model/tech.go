package model

import "fmt"

// TechKind names a technology block under `technologies` in a plant config.
// Keep these values stable; they are the config keys.
type TechKind string

const (
	TechSolar   TechKind = "solar"
	TechWind    TechKind = "wind"
	TechBattery TechKind = "battery"
	TechWave    TechKind = "wave"
	// TechGrid carries interconnect settings. It never generates.
	TechGrid TechKind = "grid"
)

// CostedKinds is the fixed order in which installed cost and O&M are summed.
var CostedKinds = []TechKind{TechSolar, TechWind, TechBattery}

// KnownKinds lists every technology block a plant config may carry.
var KnownKinds = []TechKind{TechSolar, TechWind, TechBattery, TechWave, TechGrid}

func ParseTechKind(s string) (TechKind, error) {
	for _, k := range KnownKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown technology %q", s)
}

// Generates reports whether the technology produces energy on its own.
func (k TechKind) Generates() bool {
	switch k {
	case TechSolar, TechWind, TechWave:
		return true
	default:
		return false
	}
}

// TechOutputs captures what a simulated technology reports back.
// Units:
// - InstalledCost: $
// - OMTotalExpense: $ per project year, index 0 = year one
// - AnnualEnergyKWh: kWh in year one (net for storage)
// - CapacityFactor: percent
// - NPV: $
type TechOutputs struct {
	CapacityKW      float64   `json:"capacity_kw"`
	InstalledCost   float64   `json:"total_installed_cost"`
	OMTotalExpense  []float64 `json:"om_total_expense"`
	AnnualEnergyKWh float64   `json:"annual_energy_kwh"`
	CapacityFactor  float64   `json:"capacity_factor"`
	NPV             float64   `json:"npv"`
}

// FirstYearExpense returns OMTotalExpense[0]. ok is false when the series is empty.
func (t *TechOutputs) FirstYearExpense() (float64, bool) {
	if t == nil || len(t.OMTotalExpense) == 0 {
		return 0, false
	}
	return t.OMTotalExpense[0], true
}
