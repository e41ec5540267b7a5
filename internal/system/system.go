package system

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"

	"github.com/google/uuid"
	"github.com/shirou/gopsutil/v3/cpu"

	"github.com/ivlev/slidecast/internal/video"
)

var ErrNoDuration = errors.New("no duration found in encoder output")

// CheckEncoder resolves the encoder binary to an absolute path, failing when
// it is not an executable reachable through PATH or the given path.
func CheckEncoder(binary string) (string, error) {
	if binary == "" {
		return "", errors.New("encoder binary not configured")
	}
	path, err := exec.LookPath(binary)
	if err != nil {
		return "", fmt.Errorf("encoder %q not found: %w", binary, err)
	}
	return path, nil
}

var durationPattern = regexp.MustCompile(`Duration:\s*(\d+):(\d{2}):(\d{2}(?:\.\d+)?)`)

// ParseDuration extracts the first "Duration: HH:MM:SS.xx" from ffmpeg's
// stderr and returns it in seconds.
func ParseDuration(stderr string) (float64, error) {
	m := durationPattern.FindStringSubmatch(stderr)
	if m == nil {
		return 0, ErrNoDuration
	}
	h, _ := strconv.ParseFloat(m[1], 64)
	minutes, _ := strconv.ParseFloat(m[2], 64)
	sec, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", m[0], err)
	}
	return h*3600 + minutes*60 + sec, nil
}

// ProbeDuration runs "ffmpeg -i path" and reads the container duration from
// its stderr. ffmpeg exits non-zero here because no output is given, so the
// exit status is ignored. No output is produced, so no progress total applies.
func ProbeDuration(ctx context.Context, r video.Runner, path string) (float64, error) {
	res, err := r.Run(video.WithProgressTotal(ctx, 0), []string{"-hide_banner", "-i", path})
	if err != nil {
		return 0, err
	}
	d, err := ParseDuration(res.Stderr)
	if err != nil {
		return 0, fmt.Errorf("probe %s: %w (%s)", path, err, res.Status())
	}
	return d, nil
}

// NewJobDir creates a unique directory under the system temp dir.
func NewJobDir(prefix string) (string, error) {
	dir := filepath.Join(os.TempDir(), fmt.Sprintf("%s-%s", prefix, uuid.NewString()))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// DefaultWorkers returns the number of physical cores, falling back to the
// logical CPU count.
func DefaultWorkers() int {
	n, err := cpu.Counts(false)
	if err != nil || n <= 0 {
		return runtime.NumCPU()
	}
	return n
}
