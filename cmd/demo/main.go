package main

import (
	"context"
	"flag"
	"fmt"

	"hybrid-sim/internal/config"
	"hybrid-sim/internal/engine/reference"
	"hybrid-sim/internal/hybrid"
	"hybrid-sim/internal/logger"
	"hybrid-sim/internal/model"
)

// Demo:
// - Build a solar + wind + battery plant (or load one via --config)
// - Normalize it and run the reference engine
// - Print the summary and the first hours of dispatch
func main() {
	cfgPath := flag.String("config", "", "Path to YAML/JSON config (optional)")
	n := flag.Int("n", 24, "Number of hours to print")
	life := flag.Int("life", 25, "Project lifetime in years (ignored with --config)")
	outCSV := flag.String("out", "", "Optional path to write the hourly CSV (e.g. results/hourly.csv)")
	flag.Parse()

	raw := hybrid.RawConfig{
		"site": map[string]any{
			"lat": 35.2018863,
			"lon": -101.945027,
			// A daily profile: 0.8 MW overnight, 1.5 MW during the day.
			"desired_schedule": dailyProfile(0.8, 1.5),
		},
		"technologies": map[string]any{
			"solar":   map[string]any{"system_capacity_kw": 2000.0},
			"wind":    map[string]any{"num_turbines": 1, "turbine_rating_kw": 1500.0},
			"battery": map[string]any{"system_capacity_kwh": 4000.0, "system_capacity_kw": 1000.0},
		},
	}
	var plant map[string]any
	lifetime := *life

	if *cfgPath != "" {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			panic(err)
		}
		raw, plant, lifetime = cfg.Hybrid, cfg.Plant, cfg.ProjectLifetime
	}

	runner := hybrid.New(reference.New())
	runner.Log = logger.New("demo")
	h, err := runner.Setup(raw, plant)
	if err != nil {
		panic(err)
	}
	res, err := runner.Run(context.Background(), h, lifetime)
	if err != nil {
		panic(err)
	}

	battery := res.Plant.Outputs().BatteryDispatchKW
	schedule := h.Site.DesiredSchedule()
	fmt.Println()
	for i := 0; i < min(*n, len(res.CombinedPowerProduction)); i++ {
		line := fmt.Sprintf("hour %4d  load=%7.1f kW  plant=%8.1f kW  missed=%7.1f kW  curtailed=%7.1f kW",
			i, schedule[i]*1000, res.CombinedPowerProduction[i], res.EnergyShortfall[i], res.CombinedCurtailment[i])
		if i < len(battery) {
			line += fmt.Sprintf("  battery=%-11s %7.1f kW", model.ActionFromPowerKW(battery[i]), battery[i])
		}
		fmt.Println(line)
	}

	if *outCSV != "" {
		if err := hybrid.WriteHourlyCSV(*outCSV, res); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote CSV: %s\n", *outCSV)
	}

	fmt.Printf("\nDone. Capex=$%.0f Opex=$%.0f/yr LCOE=%.2f c/kWh (nominal %.2f)\n",
		res.Capex, res.Opex, res.LCOEReal, res.LCOENominal)
}

func dailyProfile(night, day float64) []any {
	out := make([]any, 24)
	for h := range out {
		out[h] = night
		if h >= 7 && h < 22 {
			out[h] = day
		}
	}
	return out
}
