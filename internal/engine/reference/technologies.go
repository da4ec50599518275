package reference

import (
	"fmt"
	"math"

	"hybrid-sim/internal/model"
)

type solarParams struct {
	SystemCapacityKW   float64 `mapstructure:"system_capacity_kw" validate:"gt=0"`
	Losses             float64 `mapstructure:"losses" validate:"gte=0,lt=1"`
	InstalledCostPerKW float64 `mapstructure:"installed_cost_per_kw" validate:"gte=0"`
	OMCostPerKWYear    float64 `mapstructure:"om_cost_per_kw_year" validate:"gte=0"`
}

type windParams struct {
	NumTurbines        int     `mapstructure:"num_turbines" validate:"gt=0"`
	TurbineRatingKW    float64 `mapstructure:"turbine_rating_kw" validate:"gt=0"`
	CutInSpeed         float64 `mapstructure:"cut_in_speed" validate:"gte=0"`
	RatedSpeed         float64 `mapstructure:"rated_speed" validate:"gtfield=CutInSpeed"`
	CutOutSpeed        float64 `mapstructure:"cut_out_speed" validate:"gtfield=RatedSpeed"`
	InstalledCostPerKW float64 `mapstructure:"installed_cost_per_kw" validate:"gte=0"`
	OMCostPerKWYear    float64 `mapstructure:"om_cost_per_kw_year" validate:"gte=0"`
}

type batteryParams struct {
	SystemCapacityKWh   float64 `mapstructure:"system_capacity_kwh" validate:"gt=0"`
	SystemCapacityKW    float64 `mapstructure:"system_capacity_kw" validate:"gt=0"`
	ChargeEfficiency    float64 `mapstructure:"charge_efficiency" validate:"gt=0,lte=1"`
	DischargeEfficiency float64 `mapstructure:"discharge_efficiency" validate:"gt=0,lte=1"`
	MinSOC              float64 `mapstructure:"min_soc" validate:"gte=0,lte=1"`
	MaxSOC              float64 `mapstructure:"max_soc" validate:"gte=0,lte=1,gtefield=MinSOC"`
	// InitialSOC defaults to MinSOC so stored energy is never free.
	InitialSOC       float64 `mapstructure:"initial_soc" validate:"gte=0,lte=1"`
	EnergyCostPerKWh float64 `mapstructure:"energy_cost_per_kwh" validate:"gte=0"`
	PowerCostPerKW   float64 `mapstructure:"power_cost_per_kw" validate:"gte=0"`
	OMCostPerKWYear  float64 `mapstructure:"om_cost_per_kw_year" validate:"gte=0"`
}

type waveParams struct {
	NumDevices     int     `mapstructure:"num_devices" validate:"gt=0"`
	DeviceRatingKW float64 `mapstructure:"device_rating_kw" validate:"gt=0"`
}

type gridParams struct {
	InterconnectKW float64 `mapstructure:"interconnect_kw" validate:"gt=0"`
}

func decodeSolar(m map[string]any) (solarParams, error) {
	p := solarParams{Losses: 0.14, InstalledCostPerKW: 1044, OMCostPerKWYear: 18}
	return p, decode("technologies.solar", m, &p)
}

func decodeWind(m map[string]any) (windParams, error) {
	p := windParams{
		NumTurbines:        1,
		TurbineRatingKW:    5000,
		CutInSpeed:         3,
		RatedSpeed:         12,
		CutOutSpeed:        25,
		InstalledCostPerKW: 1300,
		OMCostPerKWYear:    42,
	}
	return p, decode("technologies.wind", m, &p)
}

func decodeBattery(m map[string]any) (batteryParams, error) {
	p := batteryParams{
		ChargeEfficiency:    0.95,
		DischargeEfficiency: 0.95,
		MinSOC:              0.1,
		MaxSOC:              0.9,
		EnergyCostPerKWh:    300,
		PowerCostPerKW:      250,
		OMCostPerKWYear:     10,
	}
	if err := decode("technologies.battery", m, &p); err != nil {
		return p, err
	}
	if _, ok := m["initial_soc"]; !ok {
		p.InitialSOC = p.MinSOC
	}
	return p, nil
}

func decodeWave(m map[string]any) (waveParams, error) {
	p := waveParams{DeviceRatingKW: 286}
	return p, decode("technologies.wave", m, &p)
}

func decodeGrid(m map[string]any) (gridParams, error) {
	var p gridParams
	return p, decode("technologies.grid", m, &p)
}

func (p solarParams) capacityKW() float64 { return p.SystemCapacityKW }
func (p windParams) capacityKW() float64  { return float64(p.NumTurbines) * p.TurbineRatingKW }
func (p waveParams) capacityKW() float64  { return float64(p.NumDevices) * p.DeviceRatingKW }

func (p solarParams) outputKW(site *Site, hour int) float64 {
	return p.SystemCapacityKW * site.SolarFactor(hour) * (1 - p.Losses)
}

// outputKW follows a cubic power curve between cut-in and rated speed.
func (p windParams) outputKW(site *Site, hour int) float64 {
	v := site.WindSpeed(hour)
	var frac float64
	switch {
	case v < p.CutInSpeed || v >= p.CutOutSpeed:
		frac = 0
	case v >= p.RatedSpeed:
		frac = 1
	default:
		ci3 := math.Pow(p.CutInSpeed, 3)
		frac = (math.Pow(v, 3) - ci3) / (math.Pow(p.RatedSpeed, 3) - ci3)
	}
	return p.capacityKW() * frac
}

func (p waveParams) outputKW(site *Site, hour int) float64 {
	return p.capacityKW() * site.WaveFactor(hour)
}

func (p batteryParams) model() (*model.Battery, error) {
	b, err := model.NewBattery(model.BatteryParams{
		EnergyCapacityKWh:   p.SystemCapacityKWh,
		PowerCapacityKW:     p.SystemCapacityKW,
		ChargeEfficiency:    p.ChargeEfficiency,
		DischargeEfficiency: p.DischargeEfficiency,
		MinSOC:              p.MinSOC,
		MaxSOC:              p.MaxSOC,
	}, p.InitialSOC)
	if err != nil {
		return nil, fmt.Errorf("battery: %w", err)
	}
	return b, nil
}

func (p batteryParams) installedCost() float64 {
	return p.SystemCapacityKWh*p.EnergyCostPerKWh + p.SystemCapacityKW*p.PowerCostPerKW
}
