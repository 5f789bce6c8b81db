// Package supervisor owns the source subprocess: it spawns the
// configured command, feeds its stdout to the decoder, and respawns it
// on a fixed delay when the stream ends. Only the very first spawn
// failure is fatal; after the source has run once, every exit is
// something to recover from.
package supervisor

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync/atomic"
	"time"

	"dcragent/internal/constants"
	"dcragent/internal/decode"
	"dcragent/internal/logger"
	"dcragent/pkg/metrics"
	"dcragent/pkg/retry"
)

// SpawnError reports that the source subprocess could not be started.
type SpawnError struct {
	Command string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to start source %q: %v", e.Command, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

type Supervisor struct {
	log     logger.Logger
	argv    []string
	decoder decode.Decoder
	emit    decode.ReportFunc
	delay   time.Duration

	// running is read by the health endpoint from its own goroutine;
	// everything else here stays on the pipeline goroutine.
	running atomic.Bool
}

func New(log logger.Logger, argv []string, decoder decode.Decoder, emit decode.ReportFunc, delay time.Duration) *Supervisor {
	if delay <= 0 {
		delay = constants.DefaultRestartDelay
	}
	return &Supervisor{
		log:     log,
		argv:    argv,
		decoder: decoder,
		emit:    emit,
		delay:   delay,
	}
}

// IsRunning reports whether the source subprocess is currently alive.
func (s *Supervisor) IsRunning() bool {
	return s.running.Load()
}

// Run spawns and respawns the source until ctx is cancelled or a fatal
// error surfaces. It returns ctx.Err on shutdown, a SpawnError when the
// source never started at all, and the decoder's callback error when the
// pipeline itself failed.
func (s *Supervisor) Run(ctx context.Context) error {
	b := retry.Constant(s.delay)
	first := true

	for {
		started, err := s.runOnce(ctx)
		if started {
			first = false
			b.Reset()
		}

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return ctx.Err()
		}

		var spawnErr *SpawnError
		var cbErr *decode.CallbackError
		var streamErr *decode.StreamError

		reason := "exit"
		switch {
		case errors.As(err, &cbErr):
			return err
		case errors.As(err, &spawnErr):
			if first {
				return err
			}
			reason = "spawn_error"
			s.log.Errorw("source spawn failed", "error", err)
		case errors.As(err, &streamErr):
			reason = "stream_error"
			s.log.Warnw("source stream failed", "error", err)
		case err != nil:
			s.log.Warnw("source exited", "error", err)
		default:
			s.log.Warnw("source exited")
		}

		metrics.IncSourceRestart(reason)
		s.log.Infow("restarting source",
			"command", s.command(),
			"delay", s.delay.String(),
		)
		if err := retry.Sleep(ctx, b.NextBackOff()); err != nil {
			return err
		}
	}
}

// runOnce runs one incarnation of the source to completion. The child's
// stderr is discarded; its stdout carries the stream. started reports
// whether the process actually launched.
func (s *Supervisor) runOnce(ctx context.Context) (started bool, err error) {
	cmd := exec.CommandContext(ctx, s.argv[0], s.argv[1:]...)
	cmd.WaitDelay = constants.SourceWaitDelay

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return false, &SpawnError{Command: s.command(), Err: err}
	}

	if err := cmd.Start(); err != nil {
		return false, &SpawnError{Command: s.command(), Err: err}
	}

	s.running.Store(true)
	defer s.running.Store(false)
	s.log.Infow("source started",
		"command", s.command(),
		"pid", cmd.Process.Pid,
	)

	if decodeErr := s.decoder.DecodeStream(ctx, stdout, s.emit); decodeErr != nil {
		// The stream was abandoned with the child possibly still alive.
		// Bring it down before reaping so Wait cannot block.
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return true, decodeErr
	}

	waitErr := cmd.Wait()
	if err := ctx.Err(); err != nil {
		return true, err
	}
	return true, waitErr
}

func (s *Supervisor) command() string {
	return strings.Join(s.argv, " ")
}
