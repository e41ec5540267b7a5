package composition

import (
	"fmt"
	"strings"
)

// Canvas dimensions of every produced video.
const (
	CanvasWidth  = 1920
	CanvasHeight = 1080
	CanvasFPS    = 30

	// OverlayMargin is the gap in pixels between the inset and the canvas edge.
	OverlayMargin = 16
)

// SlideTiming marks the moment in the recording at which a slide becomes visible.
type SlideTiming struct {
	SlideIndex  int     `yaml:"slide_index"`
	TimeSeconds float64 `yaml:"time_seconds"`
}

type OverlayPosition int

const (
	TopLeft OverlayPosition = iota
	TopRight
	BottomLeft
	BottomRight
)

var overlayPositionNames = map[OverlayPosition]string{
	TopLeft:     "top-left",
	TopRight:    "top-right",
	BottomLeft:  "bottom-left",
	BottomRight: "bottom-right",
}

func (p OverlayPosition) String() string {
	if name, ok := overlayPositionNames[p]; ok {
		return name
	}
	return fmt.Sprintf("OverlayPosition(%d)", int(p))
}

func (p OverlayPosition) MarshalText() ([]byte, error) {
	name, ok := overlayPositionNames[p]
	if !ok {
		return nil, fmt.Errorf("unknown overlay position %d", int(p))
	}
	return []byte(name), nil
}

func (p *OverlayPosition) UnmarshalText(text []byte) error {
	parsed, err := ParseOverlayPosition(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParseOverlayPosition accepts the kebab-case names, case-insensitively.
func ParseOverlayPosition(s string) (OverlayPosition, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for pos, name := range overlayPositionNames {
		if name == key {
			return pos, nil
		}
	}
	return TopLeft, fmt.Errorf("invalid overlay position %q (expected top-left|top-right|bottom-left|bottom-right)", s)
}

// ForegroundKind selects which stream is rendered as the inset.
type ForegroundKind int

const (
	ForegroundSlides ForegroundKind = iota
	ForegroundRecording
)

func (k ForegroundKind) String() string {
	switch k {
	case ForegroundSlides:
		return "slides"
	case ForegroundRecording:
		return "recording"
	default:
		return fmt.Sprintf("ForegroundKind(%d)", int(k))
	}
}

func (k ForegroundKind) MarshalText() ([]byte, error) {
	switch k {
	case ForegroundSlides, ForegroundRecording:
		return []byte(k.String()), nil
	default:
		return nil, fmt.Errorf("unknown foreground kind %d", int(k))
	}
}

func (k *ForegroundKind) UnmarshalText(text []byte) error {
	parsed, err := ParseForegroundKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseForegroundKind accepts "slides" and "recording"; "video" is an alias
// for "recording" kept for older request files.
func ParseForegroundKind(s string) (ForegroundKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "slides":
		return ForegroundSlides, nil
	case "recording", "video":
		return ForegroundRecording, nil
	default:
		return ForegroundSlides, fmt.Errorf("invalid foreground kind %q (expected slides|recording)", s)
	}
}

// Quality trades encode speed for fidelity. The zero value means "not set".
type Quality string

const (
	QualityDraft    Quality = "draft"
	QualityStandard Quality = "standard"
	QualityHigh     Quality = "high"
)

func (q *Quality) UnmarshalText(text []byte) error {
	parsed, err := ParseQuality(string(text))
	if err != nil {
		return err
	}
	*q = parsed
	return nil
}

func ParseQuality(s string) (Quality, error) {
	switch q := Quality(strings.ToLower(strings.TrimSpace(s))); q {
	case QualityDraft, QualityStandard, QualityHigh:
		return q, nil
	default:
		return "", fmt.Errorf("invalid quality %q (expected draft|standard|high)", s)
	}
}

// Request describes one composition job. Callers must not modify it after
// Validate succeeded.
type Request struct {
	SourceDeckPath       string          `yaml:"source_deck_path"`
	RecordingPath        string          `yaml:"recording_path"`
	OutputPath           string          `yaml:"output_path"`
	OverlayPosition      OverlayPosition `yaml:"overlay_position"`
	OverlayRelativeWidth float64         `yaml:"overlay_relative_width"`
	ForegroundKind       ForegroundKind  `yaml:"foreground_kind"`
	Quality              Quality         `yaml:"quality"`

	// Optional. Output size is always the 1920x1080 canvas, so OutputWidth
	// and OutputHeight are accepted but not used.
	FPS                 *int     `yaml:"fps,omitempty"`
	OutputWidth         *int     `yaml:"output_width,omitempty"`
	OutputHeight        *int     `yaml:"output_height,omitempty"`
	ExpectedDurationSec *float64 `yaml:"expected_duration_sec,omitempty"`

	Timings []SlideTiming `yaml:"timings"`
}
