package engine

import (
	"errors"
	"fmt"
)

var (
	ErrNoSegments      = errors.New("no slide durations given")
	ErrInvalidDuration = errors.New("slide duration must be a positive number of seconds")
)

// MissingSlideImageError is returned before any encode for the slide whose
// image is absent.
type MissingSlideImageError struct {
	Index int
	Path  string
}

func (e *MissingSlideImageError) Error() string {
	return fmt.Sprintf("missing slide image %d: %s", e.Index, e.Path)
}

// SegmentEncodeError reports a failed segment. Err is set when the encoder
// could not be run at all, Status when it ran and exited non-zero.
type SegmentEncodeError struct {
	Index  int
	Status string
	Err    error
}

func (e *SegmentEncodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("encode segment %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("encode segment %d failed: %s", e.Index, e.Status)
}

func (e *SegmentEncodeError) Unwrap() error {
	return e.Err
}

// ConcatError reports a failed concatenation of finished segments.
type ConcatError struct {
	Status string
	Err    error
}

func (e *ConcatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("concat segments: %v", e.Err)
	}
	return fmt.Sprintf("concat failed: %s", e.Status)
}

func (e *ConcatError) Unwrap() error {
	return e.Err
}

// CompositionError reports a failed picture-in-picture encode.
type CompositionError struct {
	Status string
	Err    error
}

func (e *CompositionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("compose video: %v", e.Err)
	}
	return fmt.Sprintf("compose failed: %s", e.Status)
}

func (e *CompositionError) Unwrap() error {
	return e.Err
}
