package video

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ivlev/slidecast/internal/logging"
)

// MaxStderrSize bounds the captured stderr tail kept per invocation.
const MaxStderrSize = 64 * 1024

// maxLineLength caps a single kept stderr line.
const maxLineLength = 4096

// Result is the outcome of an encoder process that ran to completion.
type Result struct {
	ExitCode int
	Stderr   string
}

func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Status describes the exit in one line, including the last stderr line
// when there is one.
func (r Result) Status() string {
	status := fmt.Sprintf("exit status %d", r.ExitCode)
	if last := ExtractLastError(r.Stderr); last != "" {
		status += ": " + last
	}
	return status
}

// Runner executes one encoder invocation and blocks until it finishes.
// A non-nil error means the process could not be run at all; a process that
// ran and failed is reported through Result.
type Runner interface {
	Run(ctx context.Context, args []string) (Result, error)
}

// ProcessError reports an encoder binary that could not be started.
type ProcessError struct {
	Binary string
	Err    error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("start %s: %v", e.Binary, e.Err)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

// FFmpegRunner runs the ffmpeg binary at Binary.
type FFmpegRunner struct {
	Binary string
	Logger zerolog.Logger

	// OnProgress, when set, enables -progress reporting on stderr and is
	// called once per completed progress block.
	OnProgress func(Progress)
}

func NewFFmpegRunner(binary string) *FFmpegRunner {
	return &FFmpegRunner{
		Binary: binary,
		Logger: logging.WithComponent("ffmpeg"),
	}
}

func (r *FFmpegRunner) Run(ctx context.Context, args []string) (Result, error) {
	if len(args) == 0 {
		return Result{}, errors.New("ffmpeg: empty argument list")
	}

	if r.OnProgress != nil {
		args = append([]string{"-progress", "pipe:2", "-nostats"}, args...)
	}

	r.Logger.Debug().Str("cmd", r.Binary).Strs("args", args).Msg("executing ffmpeg")

	cmd := exec.CommandContext(ctx, r.Binary, args...)
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return Result{}, &ProcessError{Binary: r.Binary, Err: err}
	}
	if err := cmd.Start(); err != nil {
		return Result{}, &ProcessError{Binary: r.Binary, Err: err}
	}

	tail := r.consume(stderr, ProgressTotal(ctx))

	err = cmd.Wait()
	res := Result{Stderr: tail}
	if err != nil {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return res, &ProcessError{Binary: r.Binary, Err: err}
		}
		res.ExitCode = exitErr.ExitCode()
	}

	r.Logger.Debug().Int("exit_code", res.ExitCode).Msg("ffmpeg finished")
	return res, nil
}

// consume reads stderr to EOF, dispatching progress blocks and returning the
// bounded tail of the remaining log lines. The pipe is always drained so the
// encoder never blocks on a full pipe.
func (r *FFmpegRunner) consume(rd io.Reader, total time.Duration) string {
	var (
		lines []string
		size  int
		p     progressParser
	)

	err := readLines(rd, func(line string) {
		if r.OnProgress != nil {
			if prog, done, ok := p.feed(line); ok {
				if done {
					prog.Total = total
					r.OnProgress(prog)
				}
				return
			}
		}

		lines = append(lines, line)
		size += len(line) + 1
		for size > MaxStderrSize && len(lines) > 1 {
			size -= len(lines[0]) + 1
			lines = lines[1:]
		}
	})
	if err != nil {
		r.Logger.Warn().Err(err).Msg("reading ffmpeg stderr")
		_, _ = io.Copy(io.Discard, rd)
	}
	return strings.Join(lines, "\n")
}

// readLines calls fn for every line of rd. Lines longer than the read
// buffer are cut to maxLineLength, marked, and the rest of them skipped.
func readLines(rd io.Reader, fn func(string)) error {
	br := bufio.NewReaderSize(rd, 64*1024)
	for {
		chunk, err := br.ReadSlice('\n')
		line := strings.TrimRight(string(chunk), "\r\n")

		tooLong := false
		for errors.Is(err, bufio.ErrBufferFull) {
			tooLong = true
			_, err = br.ReadSlice('\n')
		}
		if tooLong {
			line = line[:min(len(line), maxLineLength)] + " ... (stderr line too long)"
		}
		if len(chunk) > 0 {
			fn(line)
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// ExtractLastError returns the last non-empty stderr line, truncated to 200
// characters.
func ExtractLastError(stderr string) string {
	lines := strings.Split(stderr, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if len(line) > 200 {
			return line[:200] + "..."
		}
		return line
	}
	return ""
}
