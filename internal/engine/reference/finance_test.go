package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFinance(t *testing.T) {
	f, err := decodeFinance(nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0639, f.DiscountRate)

	f, err = decodeFinance(map[string]any{"finance": map[string]any{"discount_rate": 0.07}})
	require.NoError(t, err)
	assert.Equal(t, 0.07, f.DiscountRate)
	assert.Equal(t, 0.025, f.InflationRate)

	_, err = decodeFinance(map[string]any{"finance": map[string]any{"discount_rate": 1.5}})
	assert.Error(t, err)
	_, err = decodeFinance(map[string]any{"finance": "cheap"})
	assert.Error(t, err)
}

func TestDiscountFactors(t *testing.T) {
	df := discountFactors(0.1, 2)
	assert.InDelta(t, 1/1.1, df[0], 1e-12)
	assert.InDelta(t, 1/1.21, df[1], 1e-12)
}

func TestFinanceSeries(t *testing.T) {
	f := financeParams{InflationRate: 0.1, Degradation: 0.5}

	assert.Equal(t, []float64{100, 50, 25}, f.energySeries(100, 3, true))
	assert.Equal(t, []float64{100, 100}, f.energySeries(100, 2, false))

	om := f.omSeries(10, 2)
	assert.InDelta(t, 10, om[0], 1e-12)
	assert.InDelta(t, 11, om[1], 1e-12)

	assert.InDelta(t, 0.155, financeParams{DiscountRate: 0.05, InflationRate: 0.1}.nominalRate(), 1e-12)
}

func TestLCOE(t *testing.T) {
	// One year at 0% discount: (1000 + 100) $ / 11000 kWh = 10 cents/kWh.
	got, ok := lcoe(1000, []float64{100}, []float64{11000}, 0)
	require.True(t, ok)
	assert.InDelta(t, 10, got, 1e-9)

	_, ok = lcoe(1000, []float64{100}, []float64{0}, 0.05)
	assert.False(t, ok)
}

func TestLevelizedCosts(t *testing.T) {
	f := financeParams{DiscountRate: 0, InflationRate: 0.1}
	// Real holds O&M at 100; nominal adds the escalated 110 in year two.
	lcoeReal, lcoeNominal, err := f.levelizedCosts(1000, []float64{100, 110}, []float64{1000, 1000})
	require.NoError(t, err)
	assert.InDelta(t, 100*(1000+100+100)/2000.0, lcoeReal, 1e-9)
	assert.Greater(t, lcoeNominal, 0.0)

	_, _, err = f.levelizedCosts(1000, []float64{100}, []float64{0})
	assert.ErrorIs(t, err, ErrNoDelivery)

	_, _, err = f.levelizedCosts(1000, nil, []float64{1000})
	assert.Error(t, err)
}

func TestNPV(t *testing.T) {
	f := financeParams{PPAPricePerKWh: 0.1}
	// Zero rates: -capex + price*energy - om.
	assert.InDelta(t, -1000+100-10, f.npv(1000, []float64{1000}, []float64{10}), 1e-9)
}
