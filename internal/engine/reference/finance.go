package reference

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

type financeParams struct {
	// DiscountRate is the real discount rate.
	DiscountRate   float64 `mapstructure:"discount_rate" validate:"gte=0,lt=1"`
	InflationRate  float64 `mapstructure:"inflation_rate" validate:"gte=0,lt=1"`
	PPAPricePerKWh float64 `mapstructure:"ppa_price_per_kwh" validate:"gte=0"`
	// Degradation is the annual fractional loss of generator output.
	Degradation float64 `mapstructure:"degradation" validate:"gte=0,lt=1"`
}

func decodeFinance(plantCfg map[string]any) (financeParams, error) {
	p := financeParams{DiscountRate: 0.0639, InflationRate: 0.025, PPAPricePerKWh: 0.05, Degradation: 0.005}
	if plantCfg == nil {
		return p, nil
	}
	m, err := asMap("plant.finance", plantCfg["finance"])
	if err != nil {
		return p, err
	}
	return p, decode("plant.finance", m, &p)
}

func (f financeParams) nominalRate() float64 {
	return (1+f.DiscountRate)*(1+f.InflationRate) - 1
}

// discountFactors returns 1/(1+rate)^(y+1) for each project year y.
func discountFactors(rate float64, years int) []float64 {
	out := make([]float64, years)
	for y := range out {
		out[y] = 1 / math.Pow(1+rate, float64(y+1))
	}
	return out
}

// energySeries is year-one energy degraded per year. Storage does not degrade.
func (f financeParams) energySeries(firstYearKWh float64, years int, degrades bool) []float64 {
	out := make([]float64, years)
	for y := range out {
		out[y] = firstYearKWh
		if degrades {
			out[y] *= math.Pow(1-f.Degradation, float64(y))
		}
	}
	return out
}

// omSeries escalates year-one O&M with inflation (nominal dollars).
func (f financeParams) omSeries(firstYear float64, years int) []float64 {
	out := make([]float64, years)
	for y := range out {
		out[y] = firstYear * math.Pow(1+f.InflationRate, float64(y))
	}
	return out
}

// npv is -capex plus discounted nominal revenue minus O&M.
func (f financeParams) npv(capex float64, energy, om []float64) float64 {
	cash := make([]float64, len(energy))
	for y := range cash {
		price := f.PPAPricePerKWh * math.Pow(1+f.InflationRate, float64(y))
		cash[y] = price*energy[y] - om[y]
	}
	return -capex + floats.Dot(cash, discountFactors(f.nominalRate(), len(cash)))
}

// lcoe returns levelized cost in cents/kWh, or ok=false when no energy is
// delivered.
func lcoe(capex float64, om, energy []float64, rate float64) (float64, bool) {
	df := discountFactors(rate, len(energy))
	denom := floats.Dot(energy, df)
	if denom <= 0 {
		return 0, false
	}
	return 100 * (capex + floats.Dot(om, df)) / denom, true
}

// levelizedCosts returns real and nominal LCOE for the whole plant. Real LCOE
// holds O&M flat at its year-one value; nominal LCOE uses the escalated series.
func (f financeParams) levelizedCosts(capex float64, om, delivered []float64) (float64, float64, error) {
	if len(om) == 0 {
		return 0, 0, errors.New("lcoe: empty O&M series")
	}
	flatOM := make([]float64, len(om))
	for y := range flatOM {
		flatOM[y] = om[0]
	}
	lcoeReal, ok := lcoe(capex, flatOM, delivered, f.DiscountRate)
	if !ok {
		return 0, 0, fmt.Errorf("real lcoe: %w", ErrNoDelivery)
	}
	lcoeNominal, ok := lcoe(capex, om, delivered, f.nominalRate())
	if !ok {
		return 0, 0, fmt.Errorf("nominal lcoe: %w", ErrNoDelivery)
	}
	return lcoeReal, lcoeNominal, nil
}
