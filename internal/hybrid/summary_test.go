package hybrid

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hybrid-sim/internal/model"
)

func TestWriteSummary(t *testing.T) {
	res := &Result{
		CombinedCurtailment: []float64{0, 5, 5},
		EnergyShortfall:     []float64{1, 0, 0},
		AnnualEnergies: model.Breakdown{
			ByTech: map[model.TechKind]float64{model.TechWind: 200, model.TechSolar: 100},
			Hybrid: 300,
		},
		CapacityFactors: model.NewBreakdown(),
		LCOEReal:        4.5,
		Capex:           10,
		Opex:            1,
	}
	var b bytes.Buffer
	require.NoError(t, WriteSummary(&b, res))

	out := b.String()
	assert.Contains(t, out, "Hybrid Annual Energy: solar=100 kWh wind=200 kWh hybrid=300 kWh")
	assert.Contains(t, out, "Real LCOE:            4.500 cents/kWh")
	assert.Contains(t, out, "Curtailed: 10 kWh over 2 h")

	assert.Error(t, WriteSummary(&b, nil))
}
