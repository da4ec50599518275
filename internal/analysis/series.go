package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SeriesStats summarizes an hourly series (kW per hour, so Sum is kWh).
type SeriesStats struct {
	Count        int     `json:"count"`
	Sum          float64 `json:"sum"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Mean         float64 `json:"mean"`
	P05          float64 `json:"p05"`
	P95          float64 `json:"p95"`
	NonZeroHours int     `json:"non_zero_hours"`
}

// Describe computes SeriesStats. An empty series yields the zero value.
func Describe(series []float64) SeriesStats {
	s := SeriesStats{Count: len(series)}
	if len(series) == 0 {
		return s
	}
	sorted := append([]float64(nil), series...)
	sort.Float64s(sorted)

	s.Sum = floats.Sum(sorted)
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.Mean = stat.Mean(sorted, nil)
	s.P05 = stat.Quantile(0.05, stat.LinInterp, sorted, nil)
	s.P95 = stat.Quantile(0.95, stat.LinInterp, sorted, nil)
	for _, v := range sorted {
		if math.Abs(v) > 1e-9 {
			s.NonZeroHours++
		}
	}
	return s
}

// CapacityFactor returns energy as a percentage of what capacityKW would
// produce running flat out for hours.
func CapacityFactor(energyKWh, capacityKW float64, hours int) float64 {
	if capacityKW <= 0 || hours <= 0 {
		return 0
	}
	return 100 * energyKWh / (capacityKW * float64(hours))
}
