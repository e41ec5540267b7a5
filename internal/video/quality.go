package video

import (
	"strconv"

	"github.com/ivlev/slidecast/internal/composition"
)

// QualitySettings returns the x264 CRF and preset for a profile. A lower CRF
// means higher fidelity and a slower encode.
func QualitySettings(q composition.Quality) (crf int, preset string, ok bool) {
	switch q {
	case composition.QualityDraft:
		return 32, "veryfast", true
	case composition.QualityStandard:
		return 26, "medium", true
	case composition.QualityHigh:
		return 20, "slow", true
	default:
		return 0, "", false
	}
}

// ApplyQuality adds -crf and -preset ahead of the output path. Unknown or
// unset profiles leave args unchanged.
func ApplyQuality(args *Args, q composition.Quality) {
	crf, preset, ok := QualitySettings(q)
	if !ok {
		return
	}
	args.Add("-crf", strconv.Itoa(crf), "-preset", preset)
}
