package composition

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestRoundTrip(t *testing.T) {
	fps := 25
	dur := 42.0
	req := validRequest()
	req.OverlayPosition = BottomLeft
	req.ForegroundKind = ForegroundRecording
	req.FPS = &fps
	req.ExpectedDurationSec = &dur

	path := filepath.Join(t.TempDir(), "request.yaml")
	require.NoError(t, WriteRequest(&req, path))

	got, err := ReadRequest(path)
	require.NoError(t, err)
	assert.Equal(t, req, *got)
}

func TestReadRequestTextForms(t *testing.T) {
	path := filepath.Join(t.TempDir(), "request.yaml")
	writeFile(t, path, `
source_deck_path: deck.pdf
recording_path: talk.mp4
output_path: out.mp4
overlay_position: bottom-right
overlay_relative_width: 0.2
foreground_kind: video
quality: High
timings:
  - {slide_index: 0, time_seconds: 0}
  - {slide_index: 1, time_seconds: 4.5}
`)

	req, err := ReadRequest(path)
	require.NoError(t, err)
	assert.Equal(t, BottomRight, req.OverlayPosition)
	assert.Equal(t, ForegroundRecording, req.ForegroundKind)
	assert.Equal(t, QualityHigh, req.Quality)
	assert.Nil(t, req.FPS)
	assert.Len(t, req.Timings, 2)
	assert.NoError(t, Validate(*req))
}

func TestReadRequestRejects(t *testing.T) {
	dir := t.TempDir()

	missingQuality := filepath.Join(dir, "q.yaml")
	writeFile(t, missingQuality, "overlay_relative_width: 0.2\n")
	_, err := ReadRequest(missingQuality)
	assert.ErrorContains(t, err, "quality is required")

	badPosition := filepath.Join(dir, "p.yaml")
	writeFile(t, badPosition, "overlay_position: middle\nquality: draft\n")
	_, err = ReadRequest(badPosition)
	assert.ErrorContains(t, err, "invalid overlay position")

	unknownKey := filepath.Join(dir, "u.yaml")
	writeFile(t, unknownKey, "quality: draft\nopacity: 0.5\n")
	_, err = ReadRequest(unknownKey)
	assert.Error(t, err)
}
