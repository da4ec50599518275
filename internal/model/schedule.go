package model

const (
	HoursPerYear = 8760

	// DefaultScheduleValue is the flat load (MW) used when a site has no schedule.
	DefaultScheduleValue = 10.0
)

// DefaultSchedule returns a flat year-long hourly schedule.
func DefaultSchedule() []float64 {
	out := make([]float64, HoursPerYear)
	for i := range out {
		out[i] = DefaultScheduleValue
	}
	return out
}
