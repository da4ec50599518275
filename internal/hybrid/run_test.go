package hybrid

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hybrid-sim/internal/model"
)

type recordingRecorder struct {
	calls int
	res   *Result
	err   error
}

func (r *recordingRecorder) ObserveRun(_ time.Duration, res *Result, err error) {
	r.calls++
	r.res = res
	r.err = err
}

func setupWith(t *testing.T, eng *fakeEngine, techs ...string) (*Runner, *Handle) {
	t.Helper()
	tm := map[string]any{}
	for _, name := range techs {
		block := map[string]any{}
		if name == "wave" {
			block["cost_inputs"] = map[string]any{}
		}
		tm[name] = block
	}
	r := newTestRunner(eng)
	h, err := r.Setup(RawConfig{"site": map[string]any{}, "technologies": tm}, nil)
	require.NoError(t, err)
	return r, h
}

func TestRunSumsPresentTechnologies(t *testing.T) {
	cases := []struct {
		name      string
		techs     []string
		wantCapex float64
		wantOpex  float64
	}{
		{"solar only", []string{"solar"}, 1000, 10},
		{"wind and battery", []string{"wind", "battery"}, 2500, 25},
		{"all costed", []string{"solar", "wind", "battery"}, 3500, 35},
		{"none costed", []string{"wave"}, 0, 0},
		{"empty plant", nil, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, h := setupWith(t, newFakeEngine(), tc.techs...)
			res, err := r.Run(context.Background(), h, 1, WithVerbose(false))
			require.NoError(t, err)
			assert.Equal(t, tc.wantCapex, res.Capex)
			assert.Equal(t, tc.wantOpex, res.Opex)
		})
	}
}

func TestRunCopiesPlantOutputs(t *testing.T) {
	eng := newFakeEngine()
	for i := range eng.power {
		eng.power[i] = float64(i)
	}
	r, h := setupWith(t, eng, "solar")
	res, err := r.Run(context.Background(), h, 2, WithVerbose(false))
	require.NoError(t, err)

	assert.Equal(t, 2, eng.sim.simulatedN)
	require.Len(t, res.CombinedPowerProduction, model.HoursPerYear)
	assert.Equal(t, float64(model.HoursPerYear-1), res.CombinedPowerProduction[model.HoursPerYear-1])
	assert.Equal(t, -5.0, res.HybridNPV)
	assert.Equal(t, 4.2, res.LCOEReal)
	assert.Equal(t, 5.1, res.LCOENominal)
	assert.Equal(t, 100.0, res.AnnualEnergies.Get(model.TechSolar))
	assert.Same(t, eng.sim, res.Simulation)
	assert.Same(t, eng.sim.plant, res.Plant)
}

func TestRunSimulationFailureReturnsNoResult(t *testing.T) {
	boom := errors.New("did not converge")
	eng := newFakeEngine()
	eng.simErr = boom
	r, h := setupWith(t, eng, "solar")
	rec := &recordingRecorder{}
	r.Recorder = rec
	var out bytes.Buffer

	res, err := r.Run(context.Background(), h, 1, WithOutput(&out))
	assert.Nil(t, res)
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, out.Len(), "no summary on failure")
	assert.Equal(t, 1, rec.calls)
	assert.Nil(t, rec.res)
	assert.ErrorIs(t, rec.err, boom)
}

func TestRunMissingExpenseIsFatal(t *testing.T) {
	eng := newFakeEngine()
	eng.outputs[model.TechWind] = &model.TechOutputs{InstalledCost: 10}
	r, h := setupWith(t, eng, "solar", "wind")
	res, err := r.Run(context.Background(), h, 1, WithVerbose(false))
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrMissingExpense)
}

func TestRunShortSeries(t *testing.T) {
	eng := newFakeEngine()
	eng.power = []float64{1, 2, 3}
	r, h := setupWith(t, eng, "solar")

	_, err := r.Run(context.Background(), h, 1, WithVerbose(false))
	assert.ErrorIs(t, err, ErrShortSeries)

	res, err := r.Run(context.Background(), h, 1, WithVerbose(false), WithZeroPad())
	require.NoError(t, err)
	require.Len(t, res.CombinedPowerProduction, model.HoursPerYear)
	assert.Equal(t, []float64{1, 2, 3, 0}, res.CombinedPowerProduction[:4])
}

func TestRunVerboseDoesNotChangeResult(t *testing.T) {
	eng := newFakeEngine()
	r, h := setupWith(t, eng, "solar", "battery")

	var out bytes.Buffer
	loud, err := r.Run(context.Background(), h, 1, WithOutput(&out))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Hybrid Annual Energy")
	assert.Contains(t, out.String(), "Real LCOE")
	assert.Contains(t, out.String(), "solar=20.00%")

	quiet, err := r.Run(context.Background(), h, 1, WithVerbose(false), WithOutput(&out))
	require.NoError(t, err)
	assert.Equal(t, loud.Capex, quiet.Capex)
	assert.Equal(t, loud.Opex, quiet.Opex)
	assert.Equal(t, loud.CombinedPowerProduction, quiet.CombinedPowerProduction)
}

func TestRunRecordsSuccess(t *testing.T) {
	r, h := setupWith(t, newFakeEngine(), "solar")
	rec := &recordingRecorder{}
	r.Recorder = rec
	res, err := r.Run(context.Background(), h, 1, WithVerbose(false))
	require.NoError(t, err)
	assert.Equal(t, 1, rec.calls)
	assert.Same(t, res, rec.res)
	assert.NoError(t, rec.err)
}

func TestRunNilHandle(t *testing.T) {
	r := newTestRunner(newFakeEngine())
	_, err := r.Run(context.Background(), nil, 1, WithVerbose(false))
	assert.Error(t, err)
}
