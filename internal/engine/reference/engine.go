// Package reference is a small deterministic hybrid plant engine. It uses
// synthetic clear-sky, wind and wave resources derived from the site, follows
// the site schedule with the battery, and computes simple project financials.
// It exists so the shim can run end to end without an external engine.
package reference

import (
	"fmt"
	"sort"

	"hybrid-sim/internal/engine"
	"hybrid-sim/internal/model"
)

// Engine implements engine.Engine.
type Engine struct{}

func New() *Engine { return &Engine{} }

var _ engine.Engine = (*Engine)(nil)

func (e *Engine) NewSite(params map[string]any) (engine.Site, error) {
	return NewSite(params)
}

// NewSimulation builds a Simulation from cfg (site + technologies). The
// simulation constructs its own site from cfg; callers may replace it with
// SetSite. plantCfg may carry a `finance` block.
func (e *Engine) NewSimulation(cfg map[string]any, plantCfg map[string]any) (engine.Simulation, error) {
	siteCfg, err := asMap("site", cfg["site"])
	if err != nil {
		return nil, err
	}
	site, err := NewSite(siteCfg)
	if err != nil {
		return nil, err
	}
	techs, err := asMap("technologies", cfg["technologies"])
	if err != nil {
		return nil, err
	}
	fin, err := decodeFinance(plantCfg)
	if err != nil {
		return nil, err
	}

	sim := &Simulation{site: site, own: site, finance: fin}

	names := make([]string, 0, len(techs))
	for name := range techs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		kind, err := model.ParseTechKind(name)
		if err != nil {
			return nil, err
		}
		m, err := asMap("technologies."+name, techs[name])
		if err != nil {
			return nil, err
		}
		if err := sim.configure(kind, m); err != nil {
			return nil, err
		}
	}
	return sim, nil
}

func (s *Simulation) configure(kind model.TechKind, m map[string]any) error {
	switch kind {
	case model.TechSolar:
		p, err := decodeSolar(m)
		if err != nil {
			return err
		}
		s.solar = &p
	case model.TechWind:
		p, err := decodeWind(m)
		if err != nil {
			return err
		}
		s.wind = &p
	case model.TechBattery:
		p, err := decodeBattery(m)
		if err != nil {
			return err
		}
		s.battery = &p
	case model.TechWave:
		p, err := decodeWave(m)
		if err != nil {
			return err
		}
		s.wave = &Wave{params: p}
	case model.TechGrid:
		p, err := decodeGrid(m)
		if err != nil {
			return err
		}
		s.grid = &p
	default:
		return fmt.Errorf("unsupported technology %q", kind)
	}
	return nil
}
