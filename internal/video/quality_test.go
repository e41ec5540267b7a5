package video

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ivlev/slidecast/internal/composition"
)

func TestApplyQuality(t *testing.T) {
	tests := []struct {
		quality composition.Quality
		crf     string
		preset  string
	}{
		{composition.QualityDraft, "32", "veryfast"},
		{composition.QualityStandard, "26", "medium"},
		{composition.QualityHigh, "20", "slow"},
	}

	for _, tt := range tests {
		t.Run(string(tt.quality), func(t *testing.T) {
			args := BuildOverlayComposition("main.mp4", "overlay.mp4", "out.mp4", 0.2,
				composition.TopRight, composition.ForegroundSlides)
			before := args.Flatten()

			ApplyQuality(&args, tt.quality)
			after := args.Flatten()

			assert.Equal(t, "out.mp4", after[len(after)-1])
			assert.Len(t, after, len(before)+4)
			assert.Equal(t, before[:len(before)-1], after[:len(before)-1])
			assert.Equal(t, []string{"-crf", tt.crf, "-preset", tt.preset}, after[len(before)-1:len(after)-1])
		})
	}
}

func TestApplyQualityUnset(t *testing.T) {
	args := BuildImageSequence("frames/*.png", 30, "slides.mp4")
	before := args.Flatten()

	ApplyQuality(&args, "")
	assert.Equal(t, before, args.Flatten())
}

func TestQualityOrdering(t *testing.T) {
	draft, _, _ := QualitySettings(composition.QualityDraft)
	standard, _, _ := QualitySettings(composition.QualityStandard)
	high, _, _ := QualitySettings(composition.QualityHigh)

	assert.Greater(t, draft, standard)
	assert.Greater(t, standard, high)
}

func TestApplyQualityTwice(t *testing.T) {
	args := BuildStillSegment("a.png", 1, "seg.mp4")
	ApplyQuality(&args, composition.QualityDraft)
	ApplyQuality(&args, composition.QualityHigh)

	joined := strings.Join(args.Flatten(), " ")
	assert.True(t, strings.HasSuffix(joined, "-crf 32 -preset veryfast -crf 20 -preset slow seg.mp4"))
}
