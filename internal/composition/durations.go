package composition

import (
	"errors"
	"fmt"
)

var ErrTimingsExceedDuration = errors.New("last slide switch is not before the end of the recording")

// SlideDurations converts switch times into per-slide display durations.
// The first slide is shown from the start of the recording, so its duration
// runs from 0 to the second switch; the last slide lasts until total.
// The timings must already satisfy ValidateTimings.
func SlideDurations(timings []SlideTiming, total float64) ([]float64, error) {
	if err := ValidateTimings(timings); err != nil {
		return nil, err
	}
	last := timings[len(timings)-1].TimeSeconds
	if !(total > last) {
		return nil, fmt.Errorf("%w: last switch at %.3fs, recording is %.3fs", ErrTimingsExceedDuration, last, total)
	}

	durations := make([]float64, len(timings))
	for i := range timings {
		start := timings[i].TimeSeconds
		if i == 0 {
			start = 0
		}
		end := total
		if i+1 < len(timings) {
			end = timings[i+1].TimeSeconds
		}
		if end <= start {
			return nil, fmt.Errorf("slide %d would be shown for %.3fs", i, end-start)
		}
		durations[i] = end - start
	}
	return durations, nil
}
