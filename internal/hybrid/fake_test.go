package hybrid

import (
	"context"

	"hybrid-sim/internal/engine"
	"hybrid-sim/internal/model"
)

type fakeSite struct {
	schedule []float64
}

func (s *fakeSite) DesiredSchedule() []float64 { return s.schedule }

type fakeWave struct {
	calls      int
	costInputs map[string]any
}

func (w *fakeWave) CreateCostCalculator(costInputs map[string]any) error {
	w.calls++
	w.costInputs = costInputs
	return nil
}

type fakePlant struct {
	techs map[model.TechKind]*model.TechOutputs
	out   model.PlantOutputs
}

func (p *fakePlant) Technology(kind model.TechKind) (*model.TechOutputs, bool) {
	t, ok := p.techs[kind]
	return t, ok
}

func (p *fakePlant) Outputs() model.PlantOutputs { return p.out }

type fakeSim struct {
	site        engine.Site
	wave        *fakeWave
	plant       *fakePlant
	simErr      error
	simulatedN  int
	simulateCnt int
}

func (s *fakeSim) Site() engine.Site      { return s.site }
func (s *fakeSim) SetSite(st engine.Site) { s.site = st }

func (s *fakeSim) Wave() (engine.WaveTechnology, bool) {
	if s.wave == nil {
		return nil, false
	}
	return s.wave, true
}

func (s *fakeSim) Simulate(_ context.Context, projectLife int) error {
	s.simulateCnt++
	s.simulatedN = projectLife
	return s.simErr
}

func (s *fakeSim) Plant() engine.Plant { return s.plant }

// fakeEngine records what the normalizer hands it and builds plants whose
// technologies mirror the config's technology keys.
type fakeEngine struct {
	// resolve transforms the schedule a site is built with. nil keeps it.
	resolve func([]float64) []float64
	// outputs are the per-technology outputs a configured technology reports.
	outputs map[model.TechKind]*model.TechOutputs
	power   []float64
	simErr  error

	siteParams map[string]any
	simCfg     map[string]any
	plantCfg   map[string]any
	builtSite  *fakeSite
	sim        *fakeSim
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		outputs: map[model.TechKind]*model.TechOutputs{
			model.TechSolar:   {InstalledCost: 1000, OMTotalExpense: []float64{10, 11}},
			model.TechWind:    {InstalledCost: 2000, OMTotalExpense: []float64{20, 21}},
			model.TechBattery: {InstalledCost: 500, OMTotalExpense: []float64{5, 6}},
			model.TechWave:    {InstalledCost: 9000, OMTotalExpense: []float64{90}},
		},
		power: make([]float64, 2*model.HoursPerYear),
	}
}

func (e *fakeEngine) NewSite(params map[string]any) (engine.Site, error) {
	e.siteParams = params
	schedule := toFloats(params[KeyDesiredSchedule])
	if e.resolve != nil {
		schedule = e.resolve(schedule)
	}
	e.builtSite = &fakeSite{schedule: schedule}
	return e.builtSite, nil
}

func (e *fakeEngine) NewSimulation(cfg map[string]any, plantCfg map[string]any) (engine.Simulation, error) {
	e.simCfg = cfg
	e.plantCfg = plantCfg
	techs, _ := cfg[KeyTechnologies].(map[string]any)

	plant := &fakePlant{techs: map[model.TechKind]*model.TechOutputs{}}
	for name := range techs {
		kind := model.TechKind(name)
		if out, ok := e.outputs[kind]; ok {
			plant.techs[kind] = out
		}
	}
	plant.out = model.PlantOutputs{
		PreInterconnectKWAC: e.power,
		GenerationCurtailed: make([]float64, model.HoursPerYear),
		MissedLoad:          make([]float64, model.HoursPerYear),
		AnnualEnergies:      model.Breakdown{ByTech: map[model.TechKind]float64{model.TechSolar: 100}, Hybrid: 100},
		NetPresentValues:    model.Breakdown{ByTech: map[model.TechKind]float64{model.TechSolar: -5}, Hybrid: -5},
		CapacityFactors:     model.Breakdown{ByTech: map[model.TechKind]float64{model.TechSolar: 20}, Hybrid: 20},
		LCOEReal:            4.2,
		LCOENominal:         5.1,
	}

	// The engine builds its own site; the normalizer must replace it.
	sim := &fakeSim{site: &fakeSite{}, plant: plant, simErr: e.simErr}
	if _, ok := techs[string(model.TechWave)]; ok {
		sim.wave = &fakeWave{}
	}
	e.sim = sim
	return sim, nil
}

func toFloats(v any) []float64 {
	switch x := v.(type) {
	case []float64:
		return append([]float64(nil), x...)
	case []any:
		out := make([]float64, 0, len(x))
		for _, e := range x {
			switch n := e.(type) {
			case float64:
				out = append(out, n)
			case int:
				out = append(out, float64(n))
			}
		}
		return out
	default:
		return nil
	}
}
