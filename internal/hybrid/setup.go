package hybrid

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/mohae/deepcopy"

	"hybrid-sim/internal/engine"
	"hybrid-sim/internal/logger"
	"hybrid-sim/internal/model"
)

// Config keys the normalizer navigates.
const (
	KeySite            = "site"
	KeyTechnologies    = "technologies"
	KeyDesiredSchedule = "desired_schedule"
	KeyCostInputs      = "cost_inputs"
)

// ErrWaveCostInputs is returned when a wave block lacks a cost_inputs mapping.
var ErrWaveCostInputs = errors.New("technologies.wave.cost_inputs mapping is required")

// RawConfig is a nested plant configuration with `site` and `technologies`
// mappings.
type RawConfig map[string]any

// Handle is a simulation ready to run.
type Handle struct {
	Simulation engine.Simulation
	Site       engine.Site
	// Config is the normalized configuration the simulation was built from.
	Config RawConfig
}

// Runner drives an engine: Setup builds a Handle, Run simulates it.
// A Runner holds no per-run state and may be reused.
type Runner struct {
	engine engine.Engine

	Log      logger.Logger
	Recorder Recorder
}

func New(eng engine.Engine) *Runner {
	return &Runner{
		engine:   eng,
		Log:      logger.New("hybrid"),
		Recorder: NopRecorder{},
	}
}

// Setup normalizes raw and constructs a simulation from it. raw is never
// mutated; plantCfg is handed to the engine untouched.
//
// Normalization, in order:
//   - site.desired_schedule defaults to a flat 10.0 MW profile when missing or empty
//   - the site is constructed from the (defaulted) site mapping
//   - technologies.wave.cost_inputs is removed and applied after construction
//   - with a battery, site.desired_schedule becomes the site's resolved schedule
//   - the constructed site replaces whatever site the simulation built itself
func (r *Runner) Setup(raw RawConfig, plantCfg map[string]any) (*Handle, error) {
	if r.engine == nil {
		return nil, errors.New("engine is nil")
	}
	cfg, err := copyConfig(raw)
	if err != nil {
		return nil, err
	}
	siteCfg, err := section(cfg, KeySite)
	if err != nil {
		return nil, err
	}
	techs, err := section(cfg, KeyTechnologies)
	if err != nil {
		return nil, err
	}

	if isEmptySequence(siteCfg[KeyDesiredSchedule]) {
		r.Log.Debugf("site has no desired schedule, using flat %.1f MW", model.DefaultScheduleValue)
		siteCfg[KeyDesiredSchedule] = model.DefaultSchedule()
	}

	siteParams, ok := deepcopy.Copy(siteCfg).(map[string]any)
	if !ok {
		return nil, errors.New("failed to copy site parameters")
	}
	site, err := r.engine.NewSite(siteParams)
	if err != nil {
		return nil, fmt.Errorf("construct site: %w", err)
	}

	var waveCost map[string]any
	if v, ok := techs[string(model.TechWave)]; ok {
		wave, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("technologies.wave must be a mapping, got %T", v)
		}
		waveCost, ok = wave[KeyCostInputs].(map[string]any)
		if !ok {
			return nil, ErrWaveCostInputs
		}
		delete(wave, KeyCostInputs)
	}

	if _, ok := techs[string(model.TechBattery)]; ok {
		resolved := site.DesiredSchedule()
		siteCfg[KeyDesiredSchedule] = append([]float64(nil), resolved...)
	}

	sim, err := r.engine.NewSimulation(cfg, plantCfg)
	if err != nil {
		return nil, fmt.Errorf("construct simulation: %w", err)
	}
	sim.SetSite(site)

	if wave, ok := sim.Wave(); ok {
		if err := wave.CreateCostCalculator(waveCost); err != nil {
			return nil, fmt.Errorf("wave cost calculator: %w", err)
		}
	}

	r.Log.Debugw("simulation constructed", map[string]any{
		"technologies": techNames(techs),
		"wave_costs":   waveCost != nil,
	})
	return &Handle{Simulation: sim, Site: site, Config: cfg}, nil
}

func copyConfig(raw RawConfig) (RawConfig, error) {
	if raw == nil {
		return nil, errors.New("config is nil")
	}
	cp, ok := deepcopy.Copy(map[string]any(raw)).(map[string]any)
	if !ok {
		return nil, errors.New("failed to copy config")
	}
	return RawConfig(cp), nil
}

func section(cfg RawConfig, key string) (map[string]any, error) {
	v, ok := cfg[key]
	if !ok {
		return nil, fmt.Errorf("config: %q mapping is required", key)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("config: %q must be a mapping, got %T", key, v)
	}
	return m, nil
}

// isEmptySequence reports whether v is absent or a zero-length list.
func isEmptySequence(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Len() == 0
	default:
		return false
	}
}

func techNames(techs map[string]any) []string {
	out := make([]string, 0, len(techs))
	for _, k := range model.KnownKinds {
		if _, ok := techs[string(k)]; ok {
			out = append(out, string(k))
		}
	}
	return out
}
