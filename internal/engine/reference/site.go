package reference

import (
	"fmt"
	"math"

	"hybrid-sim/internal/model"
)

type siteParams struct {
	Lat             float64   `mapstructure:"lat" validate:"gte=-90,lte=90"`
	Lon             float64   `mapstructure:"lon" validate:"gte=-180,lte=180"`
	Year            int       `mapstructure:"year" validate:"omitempty,gte=1900,lte=2100"`
	MeanWindSpeed   float64   `mapstructure:"mean_wind_speed" validate:"gt=0"`
	DesiredSchedule []float64 `mapstructure:"desired_schedule"`
}

// Site is a location with synthetic hourly resources and a resolved load
// schedule.
type Site struct {
	Lat           float64
	Lon           float64
	Year          int
	MeanWindSpeed float64

	schedule []float64
}

// NewSite builds a Site. The schedule (MW) is resolved to one value per hour:
// a full-year schedule is used as is, a shorter one whose length divides the
// year (e.g. a 24-hour day) is repeated, negative loads become zero, and an
// empty schedule falls back to the flat default.
func NewSite(params map[string]any) (*Site, error) {
	p := siteParams{Year: 2012, MeanWindSpeed: 7.5}
	if err := decode("site", params, &p); err != nil {
		return nil, err
	}
	schedule, err := resolveSchedule(p.DesiredSchedule)
	if err != nil {
		return nil, err
	}
	return &Site{
		Lat:           p.Lat,
		Lon:           p.Lon,
		Year:          p.Year,
		MeanWindSpeed: p.MeanWindSpeed,
		schedule:      schedule,
	}, nil
}

func (s *Site) DesiredSchedule() []float64 { return s.schedule }

func resolveSchedule(raw []float64) ([]float64, error) {
	n := len(raw)
	if n == 0 {
		return model.DefaultSchedule(), nil
	}
	if n > model.HoursPerYear || model.HoursPerYear%n != 0 {
		return nil, fmt.Errorf("site: desired_schedule has %d values, want a divisor of %d", n, model.HoursPerYear)
	}
	out := make([]float64, model.HoursPerYear)
	for i := range out {
		out[i] = math.Max(0, raw[i%n])
	}
	return out, nil
}

// SolarFactor is the clear-sky fraction of rated PV output for hour of the year.
func (s *Site) SolarFactor(hour int) float64 {
	day := float64(hour / 24)
	h := float64(hour % 24)
	lat := s.Lat * math.Pi / 180
	decl := 23.45 * math.Pi / 180 * math.Sin(2*math.Pi*(284+day+1)/365)
	omega := 15 * (h + 0.5 - 12) * math.Pi / 180
	cosZ := math.Sin(lat)*math.Sin(decl) + math.Cos(lat)*math.Cos(decl)*math.Cos(omega)
	if cosZ <= 0 {
		return 0
	}
	return 0.8 * cosZ
}

// WindSpeed is the hub-height wind speed (m/s) for hour of the year.
func (s *Site) WindSpeed(hour int) float64 {
	day := float64(hour / 24)
	h := float64(hour % 24)
	v := s.MeanWindSpeed * (1 +
		0.30*math.Sin(2*math.Pi*day/365+1.1) +
		0.20*math.Sin(2*math.Pi*h/24+2.0) +
		0.10*math.Sin(2*math.Pi*float64(hour)/97))
	return math.Max(0, v)
}

// WaveFactor is the fraction of rated wave device output for hour of the year.
func (s *Site) WaveFactor(hour int) float64 {
	day := float64(hour / 24)
	h := float64(hour % 24)
	f := 0.45 + 0.25*math.Sin(2*math.Pi*day/365+0.5) + 0.10*math.Sin(2*math.Pi*h/12)
	return math.Min(1, math.Max(0, f))
}
