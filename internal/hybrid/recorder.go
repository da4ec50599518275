package hybrid

import "time"

// Recorder observes completed runs. res is nil when err is not.
type Recorder interface {
	ObserveRun(elapsed time.Duration, res *Result, err error)
}

// NopRecorder discards observations.
type NopRecorder struct{}

func (NopRecorder) ObserveRun(time.Duration, *Result, error) {}
