package composition

import (
	"errors"
	"fmt"
	"math"
)

// Accepted range for Request.OverlayRelativeWidth, inclusive.
const (
	MinOverlayRelativeWidth = 0.05
	MaxOverlayRelativeWidth = 0.5
)

var (
	ErrEmptyTimings         = errors.New("timings must not be empty")
	ErrInvalidSlideIndices  = errors.New("slide indices must start at 0 and be contiguous")
	ErrNonIncreasingTimings = errors.New("timings must be strictly increasing by time")
)

// OverlayWidthError reports a relative inset width outside the accepted range.
type OverlayWidthError struct {
	Value float64
}

func (e *OverlayWidthError) Error() string {
	return fmt.Sprintf("overlay relative width must be within [%.2f, %.2f], got %v",
		MinOverlayRelativeWidth, MaxOverlayRelativeWidth, e.Value)
}

// ValidateTimings checks that indices are exactly 0..N-1 in order and that
// switch times strictly increase.
func ValidateTimings(timings []SlideTiming) error {
	if len(timings) == 0 {
		return ErrEmptyTimings
	}
	for i, t := range timings {
		if t.SlideIndex != i {
			return ErrInvalidSlideIndices
		}
	}
	for i := 0; i < len(timings)-1; i++ {
		// NaN never compares less, so it is rejected here as well.
		if !(timings[i].TimeSeconds < timings[i+1].TimeSeconds) {
			return ErrNonIncreasingTimings
		}
	}
	return nil
}

// Validate runs the width check first and then the timing checks; only the
// first failure is returned.
func Validate(req Request) error {
	if err := ValidateOverlayWidth(req.OverlayRelativeWidth); err != nil {
		return err
	}
	return ValidateTimings(req.Timings)
}

// ValidateOverlayWidth rejects widths outside the inclusive accepted range,
// NaN included.
func ValidateOverlayWidth(w float64) error {
	if math.IsNaN(w) || w < MinOverlayRelativeWidth || w > MaxOverlayRelativeWidth {
		return &OverlayWidthError{Value: w}
	}
	return nil
}
