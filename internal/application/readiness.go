package application

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/workshop-sync/internal/domain"
	"github.com/bnema/workshop-sync/internal/ports"
	"github.com/rs/zerolog"
)

const (
	DefaultReadinessAttempts = 10
	DefaultReadinessStep     = 250 * time.Millisecond
)

// ReadinessSettings with zero Attempts or Step take the package defaults.
type ReadinessSettings struct {
	Attempts int
	Step     time.Duration
	// Lenient returns success after the last check even if the directory never appeared.
	Lenient bool
}

func (s ReadinessSettings) withDefaults() ReadinessSettings {
	if s.Attempts < 1 {
		s.Attempts = DefaultReadinessAttempts
	}
	if s.Step <= 0 {
		s.Step = DefaultReadinessStep
	}
	return s
}

// Budget is the total time spent sleeping when every check fails.
func (s ReadinessSettings) Budget() time.Duration {
	s = s.withDefaults()
	n := time.Duration(s.Attempts)
	return s.Step * n * (n - 1) / 2
}

// PollWaiter waits for a directory with linearly growing delays: check i is
// preceded by a sleep of i*Step.
type PollWaiter struct {
	dirs     ports.DirStore
	clock    ports.Clock
	settings ReadinessSettings
	logger   zerolog.Logger
}

var _ ports.ReadinessWaiter = (*PollWaiter)(nil)

func NewPollWaiter(dirs ports.DirStore, clock ports.Clock, settings ReadinessSettings, logger zerolog.Logger) *PollWaiter {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &PollWaiter{
		dirs:     dirs,
		clock:    clock,
		settings: settings.withDefaults(),
		logger:   logger,
	}
}

func (w *PollWaiter) WaitForDir(ctx context.Context, path string) error {
	for i := 0; i < w.settings.Attempts; i++ {
		if err := w.clock.Sleep(ctx, time.Duration(i)*w.settings.Step); err != nil {
			return err
		}

		ok, err := w.dirs.IsDir(ctx, path)
		if err != nil {
			return fmt.Errorf("check staging directory: %w", err)
		}
		if ok {
			w.logger.Debug().Str("path", path).Int("checks", i+1).Msg("staging directory ready")
			return nil
		}
	}

	if w.settings.Lenient {
		w.logger.Warn().Str("path", path).Int("checks", w.settings.Attempts).Msg("staging directory did not appear, continuing")
		return nil
	}

	return fmt.Errorf("%w: %s missing after %d checks", domain.ErrStagingNotReady, path, w.settings.Attempts)
}
