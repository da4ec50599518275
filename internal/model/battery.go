package model

import (
	"errors"
	"math"
)

// BatteryParams defines the physical parameters of a storage block.
// Units:
// - EnergyCapacityKWh: kWh
// - PowerCapacityKW: kW
// - Efficiencies: 0..1
// - SOC: fraction 0..1
type BatteryParams struct {
	EnergyCapacityKWh   float64
	PowerCapacityKW     float64
	ChargeEfficiency    float64
	DischargeEfficiency float64
	MinSOC              float64
	MaxSOC              float64
}

// BatteryState captures mutable state.
type BatteryState struct {
	// SOC is the state of charge as a fraction [0,1].
	SOC float64
}

// Battery is a convenience wrapper bundling params + state.
type Battery struct {
	Params BatteryParams
	State  BatteryState
}

func NewBattery(params BatteryParams, initialSOC float64) (*Battery, error) {
	b := &Battery{
		Params: params,
		State:  BatteryState{SOC: initialSOC},
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Battery) Validate() error {
	p := b.Params
	if p.EnergyCapacityKWh <= 0 {
		return errors.New("EnergyCapacityKWh must be > 0")
	}
	if p.PowerCapacityKW <= 0 {
		return errors.New("PowerCapacityKW must be > 0")
	}
	if p.ChargeEfficiency <= 0 || p.ChargeEfficiency > 1 {
		return errors.New("ChargeEfficiency must be in (0, 1]")
	}
	if p.DischargeEfficiency <= 0 || p.DischargeEfficiency > 1 {
		return errors.New("DischargeEfficiency must be in (0, 1]")
	}
	if p.MinSOC < 0 || p.MinSOC > 1 || p.MaxSOC < 0 || p.MaxSOC > 1 || p.MinSOC > p.MaxSOC {
		return errors.New("MinSOC/MaxSOC must satisfy 0<=MinSOC<=MaxSOC<=1")
	}
	if b.State.SOC < p.MinSOC || b.State.SOC > p.MaxSOC {
		return errors.New("initial SOC must be within [MinSOC, MaxSOC]")
	}
	return nil
}

// Dispatch represents a requested power setpoint for an interval.
// Convention: positive kW = discharge to the plant bus, negative kW = charge from it.
type Dispatch struct {
	PowerKW float64
}

// IntervalResult captures what happened in one interval.
type IntervalResult struct {
	PowerKW       float64 // realized power (may be clipped)
	EnergyOutKWh  float64 // discharge energy delivered to the bus
	EnergyInKWh   float64 // charge energy drawn from the bus
	ThroughputKWh float64 // EnergyInKWh + EnergyOutKWh
	SOCStart      float64
	SOCEnd        float64
}

// ClipDispatch enforces the power limit, without applying SOC constraints.
func (b *Battery) ClipDispatch(d Dispatch) Dispatch {
	p := d.PowerKW
	if p > b.Params.PowerCapacityKW {
		p = b.Params.PowerCapacityKW
	}
	if p < -b.Params.PowerCapacityKW {
		p = -b.Params.PowerCapacityKW
	}
	return Dispatch{PowerKW: p}
}

// ApplyDispatch applies a dispatch for a single interval, enforcing:
// - power capacity
// - SOC bounds (by clipping the requested power)
//
// durationHours is the interval length in hours.
func (b *Battery) ApplyDispatch(d Dispatch, durationHours float64) (IntervalResult, error) {
	if durationHours <= 0 {
		return IntervalResult{}, errors.New("durationHours must be > 0")
	}

	d = b.ClipDispatch(d)
	p := d.PowerKW

	res := IntervalResult{
		SOCStart: b.State.SOC,
	}

	maxIn := b.maxChargeEnergyKWh(durationHours)
	maxOut := b.maxDischargeEnergyKWh(durationHours)

	switch {
	case p < 0:
		reqIn := math.Abs(p) * durationHours
		if reqIn > maxIn {
			reqIn = maxIn
			p = -reqIn / durationHours
		}
		// SOC increases by stored energy = in * chargeEff
		stored := reqIn * b.Params.ChargeEfficiency
		b.State.SOC = clamp01((b.State.SOC*b.Params.EnergyCapacityKWh + stored) / b.Params.EnergyCapacityKWh)

		res.PowerKW = p
		res.EnergyInKWh = reqIn
		res.ThroughputKWh = reqIn
	case p > 0:
		reqOut := p * durationHours
		if reqOut > maxOut {
			reqOut = maxOut
			p = reqOut / durationHours
		}
		// SOC decreases by withdrawn energy = out / dischargeEff
		withdrawn := reqOut / b.Params.DischargeEfficiency
		b.State.SOC = clamp01((b.State.SOC*b.Params.EnergyCapacityKWh - withdrawn) / b.Params.EnergyCapacityKWh)

		res.PowerKW = p
		res.EnergyOutKWh = reqOut
		res.ThroughputKWh = reqOut
	}

	res.SOCEnd = b.State.SOC
	return res, nil
}

func (b *Battery) maxChargeEnergyKWh(durationHours float64) float64 {
	storable := (b.Params.MaxSOC - b.State.SOC) * b.Params.EnergyCapacityKWh
	if storable <= 0 {
		return 0
	}
	limitBySOC := storable / b.Params.ChargeEfficiency
	limitByPower := b.Params.PowerCapacityKW * durationHours
	return math.Max(0, math.Min(limitBySOC, limitByPower))
}

func (b *Battery) maxDischargeEnergyKWh(durationHours float64) float64 {
	withdrawable := (b.State.SOC - b.Params.MinSOC) * b.Params.EnergyCapacityKWh
	if withdrawable <= 0 {
		return 0
	}
	limitBySOC := withdrawable * b.Params.DischargeEfficiency
	limitByPower := b.Params.PowerCapacityKW * durationHours
	return math.Max(0, math.Min(limitBySOC, limitByPower))
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
