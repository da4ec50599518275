package reference

import (
	"context"
	"errors"
	"fmt"
	"math"

	"hybrid-sim/internal/analysis"
	"hybrid-sim/internal/engine"
	"hybrid-sim/internal/model"
)

var (
	ErrNoGeneration = errors.New("plant has no generating technology")
	ErrNoDelivery   = errors.New("plant delivered no energy")
)

// Simulation is a hybrid plant built from a normalized config.
type Simulation struct {
	site engine.Site
	// own is the site built from the config; it provides resources when the
	// replacement site is not a reference Site.
	own *Site

	solar   *solarParams
	wind    *windParams
	battery *batteryParams
	wave    *Wave
	grid    *gridParams
	finance financeParams

	plant *Plant
}

func (s *Simulation) Site() engine.Site        { return s.site }
func (s *Simulation) SetSite(site engine.Site) { s.site = site }
func (s *Simulation) Plant() engine.Plant      { return s.plant }

func (s *Simulation) Wave() (engine.WaveTechnology, bool) {
	if s.wave == nil {
		return nil, false
	}
	return s.wave, true
}

func (s *Simulation) resourceSite() *Site {
	if rs, ok := s.site.(*Site); ok && rs != nil {
		return rs
	}
	return s.own
}

type techRun struct {
	kind       model.TechKind
	capacityKW float64
	capex      float64
	omYearOne  float64
	energyKWh  float64
	degrades   bool
}

// Simulate dispatches year one hour by hour, then extends outputs and
// financials over projectLife years. It may be called again; each call
// starts from fresh state.
func (s *Simulation) Simulate(ctx context.Context, projectLife int) error {
	if projectLife <= 0 {
		return fmt.Errorf("project life must be > 0, got %d", projectLife)
	}
	if s.solar == nil && s.wind == nil && s.wave == nil {
		return ErrNoGeneration
	}
	if s.wave != nil && s.wave.costs == nil {
		return errNoWaveCosts
	}
	site := s.resourceSite()
	schedule := s.site.DesiredSchedule()
	if len(schedule) != model.HoursPerYear {
		return fmt.Errorf("site schedule has %d values, want %d", len(schedule), model.HoursPerYear)
	}

	var batt *model.Battery
	if s.battery != nil {
		b, err := s.battery.model()
		if err != nil {
			return err
		}
		batt = b
	}
	interconnect := s.interconnectKW()

	var (
		solarKWh, windKWh, waveKWh float64
		battOutKWh, battInKWh      float64
		deliveredKWh               float64
	)
	net := make([]float64, model.HoursPerYear)
	curtailed := make([]float64, model.HoursPerYear)
	missed := make([]float64, model.HoursPerYear)
	var battKW []float64
	if batt != nil {
		battKW = make([]float64, model.HoursPerYear)
	}

	for h := 0; h < model.HoursPerYear; h++ {
		if h%24 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		var gen float64
		if s.solar != nil {
			kw := s.solar.outputKW(site, h)
			solarKWh += kw
			gen += kw
		}
		if s.wind != nil {
			kw := s.wind.outputKW(site, h)
			windKWh += kw
			gen += kw
		}
		if s.wave != nil {
			kw := s.wave.params.outputKW(site, h)
			waveKWh += kw
			gen += kw
		}

		loadKW := schedule[h] * 1000
		busKW := gen
		if batt != nil {
			// Follow the schedule: discharge into a deficit, charge from a surplus.
			res, err := batt.ApplyDispatch(model.Dispatch{PowerKW: loadKW - gen}, 1)
			if err != nil {
				return fmt.Errorf("hour %d battery dispatch: %w", h, err)
			}
			battKW[h] = res.PowerKW
			battOutKWh += res.EnergyOutKWh
			battInKWh += res.EnergyInKWh
			busKW += res.PowerKW
		}

		delivered := math.Min(busKW, interconnect)
		net[h] = busKW
		curtailed[h] = math.Max(0, busKW-interconnect)
		missed[h] = math.Max(0, loadKW-delivered)
		deliveredKWh += delivered
	}
	if deliveredKWh <= 0 {
		return ErrNoDelivery
	}

	runs := make([]techRun, 0, 4)
	if s.solar != nil {
		runs = append(runs, techRun{
			kind:       model.TechSolar,
			capacityKW: s.solar.capacityKW(),
			capex:      s.solar.capacityKW() * s.solar.InstalledCostPerKW,
			omYearOne:  s.solar.capacityKW() * s.solar.OMCostPerKWYear,
			energyKWh:  solarKWh,
			degrades:   true,
		})
	}
	if s.wind != nil {
		runs = append(runs, techRun{
			kind:       model.TechWind,
			capacityKW: s.wind.capacityKW(),
			capex:      s.wind.capacityKW() * s.wind.InstalledCostPerKW,
			omYearOne:  s.wind.capacityKW() * s.wind.OMCostPerKWYear,
			energyKWh:  windKWh,
			degrades:   true,
		})
	}
	if s.battery != nil {
		runs = append(runs, techRun{
			kind:       model.TechBattery,
			capacityKW: s.battery.SystemCapacityKW,
			capex:      s.battery.installedCost(),
			omYearOne:  s.battery.SystemCapacityKW * s.battery.OMCostPerKWYear,
			energyKWh:  battOutKWh - battInKWh,
		})
	}
	if s.wave != nil {
		capex, err := s.wave.installedCost()
		if err != nil {
			return err
		}
		runs = append(runs, techRun{
			kind:       model.TechWave,
			capacityKW: s.wave.params.capacityKW(),
			capex:      capex,
			omYearOne:  capex * waveOMFraction,
			energyKWh:  waveKWh,
			degrades:   true,
		})
	}

	plant := &Plant{techs: map[model.TechKind]*model.TechOutputs{}}
	out := model.PlantOutputs{
		GenerationCurtailed: curtailed,
		MissedLoad:          missed,
		BatteryDispatchKW:   battKW,
		AnnualEnergies:      model.NewBreakdown(),
		NetPresentValues:    model.NewBreakdown(),
		CapacityFactors:     model.NewBreakdown(),
	}

	f := s.finance
	var totalCapex float64
	totalOM := make([]float64, projectLife)
	for _, r := range runs {
		energy := f.energySeries(r.energyKWh, projectLife, r.degrades)
		om := f.omSeries(r.omYearOne, projectLife)
		cf := analysis.CapacityFactor(r.energyKWh, r.capacityKW, model.HoursPerYear)
		if r.kind == model.TechBattery {
			cf = analysis.CapacityFactor(battOutKWh, r.capacityKW, model.HoursPerYear)
		}
		npv := f.npv(r.capex, energy, om)

		plant.techs[r.kind] = &model.TechOutputs{
			CapacityKW:      r.capacityKW,
			InstalledCost:   r.capex,
			OMTotalExpense:  om,
			AnnualEnergyKWh: r.energyKWh,
			CapacityFactor:  cf,
			NPV:             npv,
		}
		out.AnnualEnergies.ByTech[r.kind] = r.energyKWh
		out.CapacityFactors.ByTech[r.kind] = cf
		out.NetPresentValues.ByTech[r.kind] = npv
		out.NetPresentValues.Hybrid += npv
		totalCapex += r.capex
		for y := range totalOM {
			totalOM[y] += om[y]
		}
	}

	out.AnnualEnergies.Hybrid = deliveredKWh
	out.CapacityFactors.Hybrid = analysis.CapacityFactor(deliveredKWh, interconnect, model.HoursPerYear)
	delivered := f.energySeries(deliveredKWh, projectLife, true)
	lcoeReal, lcoeNominal, err := f.levelizedCosts(totalCapex, totalOM, delivered)
	if err != nil {
		return err
	}
	out.LCOEReal, out.LCOENominal = lcoeReal, lcoeNominal

	out.PreInterconnectKWAC = make([]float64, 0, projectLife*model.HoursPerYear)
	for y := 0; y < projectLife; y++ {
		scale := math.Pow(1-f.Degradation, float64(y))
		for _, kw := range net {
			out.PreInterconnectKWAC = append(out.PreInterconnectKWAC, kw*scale)
		}
	}

	plant.out = out
	s.plant = plant
	return nil
}

// interconnectKW is the grid limit, or the plant's total nameplate when no
// grid block is configured.
func (s *Simulation) interconnectKW() float64 {
	if s.grid != nil {
		return s.grid.InterconnectKW
	}
	var total float64
	if s.solar != nil {
		total += s.solar.capacityKW()
	}
	if s.wind != nil {
		total += s.wind.capacityKW()
	}
	if s.wave != nil {
		total += s.wave.params.capacityKW()
	}
	if s.battery != nil {
		total += s.battery.SystemCapacityKW
	}
	return total
}

// Plant holds the outputs of the last Simulate call.
type Plant struct {
	techs map[model.TechKind]*model.TechOutputs
	out   model.PlantOutputs
}

func (p *Plant) Technology(kind model.TechKind) (*model.TechOutputs, bool) {
	if p == nil {
		return nil, false
	}
	t, ok := p.techs[kind]
	return t, ok
}

func (p *Plant) Outputs() model.PlantOutputs {
	if p == nil {
		return model.PlantOutputs{}
	}
	return p.out
}
