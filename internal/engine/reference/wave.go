package reference

import (
	"errors"
	"fmt"
)

var errNoWaveCosts = errors.New("wave: cost calculator not created")

type waveCostInputs struct {
	ReferenceModelNum      int     `mapstructure:"reference_model_num" validate:"oneof=3 5 6"`
	WaterDepth             float64 `mapstructure:"water_depth" validate:"gt=0"`
	DistanceToShore        float64 `mapstructure:"distance_to_shore" validate:"gt=0"`
	NumberRows             int     `mapstructure:"number_rows" validate:"gt=0"`
	DevicesPerRow          int     `mapstructure:"devices_per_row" validate:"gt=0"`
	DeviceSpacing          float64 `mapstructure:"device_spacing" validate:"gt=0"`
	RowSpacing             float64 `mapstructure:"row_spacing" validate:"gt=0"`
	CablingSystemOverbuild float64 `mapstructure:"cabling_system_overbuild" validate:"gte=0"`
}

// Structure and PTO cost ($/kW) per reference model.
var waveStructureCostPerKW = map[int]float64{3: 6500, 5: 5200, 6: 7100}

const (
	waveCableCostPerKm  = 850_000.0
	waveArrayCostPerKm  = 420_000.0
	waveMooringPerMeter = 1_100.0
	waveOMFraction      = 0.04
)

// Wave is a wave energy array. It carries no costs until
// CreateCostCalculator is called.
type Wave struct {
	params waveParams
	costs  *waveCostInputs
}

func (w *Wave) CreateCostCalculator(costInputs map[string]any) error {
	var c waveCostInputs
	if err := decode("wave cost_inputs", costInputs, &c); err != nil {
		return err
	}
	if got := c.NumberRows * c.DevicesPerRow; got != w.params.NumDevices {
		return fmt.Errorf("wave cost_inputs: %d rows x %d devices does not match num_devices=%d",
			c.NumberRows, c.DevicesPerRow, w.params.NumDevices)
	}
	w.costs = &c
	return nil
}

func (w *Wave) installedCost() (float64, error) {
	if w.costs == nil {
		return 0, errNoWaveCosts
	}
	c := w.costs
	structure := w.params.capacityKW() * waveStructureCostPerKW[c.ReferenceModelNum]
	export := c.DistanceToShore * waveCableCostPerKm * (1 + c.CablingSystemOverbuild)
	arrayKm := (float64(c.DevicesPerRow-1)*c.DeviceSpacing + float64(c.NumberRows-1)*c.RowSpacing) / 1000
	array := arrayKm * waveArrayCostPerKm * (1 + c.CablingSystemOverbuild)
	mooring := float64(w.params.NumDevices) * c.WaterDepth * waveMooringPerMeter
	return structure + export + array + mooring, nil
}
