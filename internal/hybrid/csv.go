package hybrid

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"hybrid-sim/internal/model"
)

// WriteHourlyCSV writes the year-one hourly series of res to path.
// Battery columns are included when the plant reports battery dispatch.
func WriteHourlyCSV(path string, res *Result) error {
	if res == nil {
		return fmt.Errorf("result is nil")
	}
	var battery []float64
	if res.Plant != nil {
		battery = res.Plant.Outputs().BatteryDispatchKW
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"hour",
		"combined_power_kw",
		"curtailed_kw",
		"missed_load_kw",
	}
	if len(battery) > 0 {
		header = append(header, "battery_kw", "battery_action")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for h, p := range res.CombinedPowerProduction {
		row := []string{
			strconv.Itoa(h),
			fmtFloat(p),
			fmtFloat(at(res.CombinedCurtailment, h)),
			fmtFloat(at(res.EnergyShortfall, h)),
		}
		if len(battery) > 0 {
			kw := at(battery, h)
			row = append(row, fmtFloat(kw), string(model.ActionFromPowerKW(kw)))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func at(series []float64, i int) float64 {
	if i < len(series) {
		return series[i]
	}
	return 0
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
