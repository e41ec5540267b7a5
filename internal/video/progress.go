package video

import (
	"context"
	"strconv"
	"strings"
	"time"
)

// Progress is one block of ffmpeg -progress output.
type Progress struct {
	Frame   int
	FPS     float64
	OutTime time.Duration
	Speed   string
	// Done is set on the final block ("progress=end").
	Done bool
	// Total is the expected output length attached with WithProgressTotal.
	Total time.Duration
}

type progressTotalKey struct{}

// WithProgressTotal records the expected output length of the encodes run
// with ctx. Progress reported for them carries it as Total.
func WithProgressTotal(ctx context.Context, total time.Duration) context.Context {
	return context.WithValue(ctx, progressTotalKey{}, total)
}

// ProgressTotal returns the length set by WithProgressTotal, or 0.
func ProgressTotal(ctx context.Context) time.Duration {
	total, _ := ctx.Value(progressTotalKey{}).(time.Duration)
	return total
}

// SecondsDuration converts fractional seconds to a time.Duration.
func SecondsDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Percent returns the share of Total already encoded, clamped to [0, 100].
// It returns -1 when Total is unknown.
func (p Progress) Percent() float64 {
	if p.Total <= 0 {
		return -1
	}
	pct := float64(p.OutTime) / float64(p.Total) * 100
	switch {
	case pct < 0:
		return 0
	case pct > 100 || p.Done:
		return 100
	}
	return pct
}

var progressKeys = map[string]bool{
	"frame": true, "fps": true, "stream_0_0_q": true, "bitrate": true,
	"total_size": true, "out_time_us": true, "out_time_ms": true,
	"out_time": true, "dup_frames": true, "drop_frames": true,
	"speed": true, "progress": true,
}

type progressParser struct {
	cur Progress
}

// feed consumes one stderr line. ok reports whether the line belonged to a
// progress block; done is true when the line closed a block, in which case
// prog holds the finished block.
func (p *progressParser) feed(line string) (prog Progress, done, ok bool) {
	key, value, found := strings.Cut(strings.TrimSpace(line), "=")
	if !found || !progressKeys[key] {
		return Progress{}, false, false
	}
	value = strings.TrimSpace(value)

	switch key {
	case "frame":
		p.cur.Frame, _ = strconv.Atoi(value)
	case "fps":
		p.cur.FPS, _ = strconv.ParseFloat(value, 64)
	case "out_time_us", "out_time_ms":
		// Both keys carry microseconds.
		if us, err := strconv.ParseInt(value, 10, 64); err == nil {
			p.cur.OutTime = time.Duration(us) * time.Microsecond
		}
	case "speed":
		p.cur.Speed = value
	case "progress":
		p.cur.Done = value == "end"
		prog = p.cur
		p.cur = Progress{}
		return prog, true, true
	}
	return Progress{}, false, true
}
