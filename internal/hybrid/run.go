package hybrid

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"hybrid-sim/internal/model"
)

var (
	// ErrMissingExpense is returned when a configured technology reports an
	// empty O&M expense series.
	ErrMissingExpense = errors.New("technology reports no O&M expense")
	// ErrShortSeries is returned when the combined power series covers less
	// than one year and zero padding was not requested.
	ErrShortSeries = errors.New("combined power series shorter than one year")
)

type runOptions struct {
	verbose bool
	out     io.Writer
	zeroPad bool
}

// RunOption tunes a single Run call.
type RunOption func(*runOptions)

// WithVerbose toggles the printed summary. It is on by default.
func WithVerbose(v bool) RunOption {
	return func(o *runOptions) { o.verbose = v }
}

// WithOutput sets where the summary is printed (default stdout).
func WithOutput(w io.Writer) RunOption {
	return func(o *runOptions) { o.out = w }
}

// WithZeroPad pads a combined power series shorter than a year with zeros
// instead of failing with ErrShortSeries.
func WithZeroPad() RunOption {
	return func(o *runOptions) { o.zeroPad = true }
}

// Run simulates h for projectLifetime years and aggregates the outputs.
// A simulation failure is returned as is and no Result is built.
func (r *Runner) Run(ctx context.Context, h *Handle, projectLifetime int, opts ...RunOption) (*Result, error) {
	o := runOptions{verbose: true, out: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}

	start := time.Now()
	res, err := r.run(ctx, h, projectLifetime, o)
	elapsed := time.Since(start)
	if r.Recorder != nil {
		r.Recorder.ObserveRun(elapsed, res, err)
	}
	if err != nil {
		r.Log.Errorf("simulation failed after %s: %v", elapsed, err)
		return nil, err
	}
	r.Log.Infof("simulated %d years in %s, lcoe=%.3f c/kWh", projectLifetime, elapsed, res.LCOEReal)

	if o.verbose && o.out != nil {
		if err := WriteSummary(o.out, res); err != nil {
			r.Log.Warnf("write summary: %v", err)
		}
	}
	return res, nil
}

func (r *Runner) run(ctx context.Context, h *Handle, projectLifetime int, o runOptions) (*Result, error) {
	if h == nil || h.Simulation == nil {
		return nil, errors.New("handle is nil")
	}
	sim := h.Simulation
	if err := sim.Simulate(ctx, projectLifetime); err != nil {
		return nil, fmt.Errorf("simulate %d years: %w", projectLifetime, err)
	}
	plant := sim.Plant()
	if plant == nil {
		return nil, errors.New("simulation has no plant")
	}

	capex, opex := 0.0, 0.0
	for _, kind := range model.CostedKinds {
		tech, ok := plant.Technology(kind)
		if !ok || tech == nil {
			continue
		}
		expense, ok := tech.FirstYearExpense()
		if !ok {
			return nil, fmt.Errorf("%s: %w", kind, ErrMissingExpense)
		}
		capex += tech.InstalledCost
		opex += expense
	}

	out := plant.Outputs()
	power, err := firstYear(out.PreInterconnectKWAC, o.zeroPad)
	if err != nil {
		return nil, err
	}

	return &Result{
		Simulation:              sim,
		Plant:                   plant,
		CombinedPowerProduction: power,
		CombinedCurtailment:     out.GenerationCurtailed,
		EnergyShortfall:         out.MissedLoad,
		AnnualEnergies:          out.AnnualEnergies,
		CapacityFactors:         out.CapacityFactors,
		HybridNPV:               out.NetPresentValues.Hybrid,
		NPVs:                    out.NetPresentValues,
		LCOEReal:                out.LCOEReal,
		LCOENominal:             out.LCOENominal,
		Capex:                   capex,
		Opex:                    opex,
	}, nil
}

// firstYear returns a copy of the first HoursPerYear values of series.
func firstYear(series []float64, zeroPad bool) ([]float64, error) {
	if len(series) < model.HoursPerYear && !zeroPad {
		return nil, fmt.Errorf("%w: got %d values", ErrShortSeries, len(series))
	}
	out := make([]float64, model.HoursPerYear)
	copy(out, series)
	return out, nil
}
