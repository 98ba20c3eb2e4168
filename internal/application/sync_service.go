package application

import (
	"context"
	"fmt"

	"github.com/bnema/workshop-sync/internal/domain"
	"github.com/bnema/workshop-sync/internal/ports"
	"github.com/rs/zerolog"
)

const DefaultDownloadAttempts = 3

type SyncSettings struct {
	Roots            domain.Roots
	DownloadAttempts int
	RunID            string
	Progress         ports.Progress
	Logger           zerolog.Logger
}

// SyncService places every manifest item into the destination root, reusing
// leftovers in the staging root and downloading the rest through the client.
type SyncService struct {
	client   ports.WorkshopClient
	dirs     ports.DirStore
	waiter   ports.ReadinessWaiter
	clock    ports.Clock
	progress ports.Progress
	logger   zerolog.Logger
	roots    domain.Roots
	attempts int
	runID    string
}

func NewSyncService(client ports.WorkshopClient, dirs ports.DirStore, waiter ports.ReadinessWaiter, clock ports.Clock, settings SyncSettings) *SyncService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if settings.Progress == nil {
		settings.Progress = ports.NopProgress{}
	}
	if settings.DownloadAttempts < 1 {
		settings.DownloadAttempts = DefaultDownloadAttempts
	}

	return &SyncService{
		client:   client,
		dirs:     dirs,
		waiter:   waiter,
		clock:    clock,
		progress: settings.Progress,
		logger:   settings.Logger,
		roots:    settings.Roots,
		attempts: settings.DownloadAttempts,
		runID:    settings.RunID,
	}
}

// Plan reports what Run would do for each item without touching the
// filesystem or the workshop client.
func (s *SyncService) Plan(ctx context.Context, items []domain.Item, opts RunOptions) ([]PlannedItem, error) {
	planned := make([]PlannedItem, 0, len(items))
	for _, item := range items {
		placement := s.roots.For(item.ID)
		action, cleanup, err := s.decide(ctx, placement, opts)
		if err != nil {
			return nil, fmt.Errorf("plan %s (%s): %w", item.Name, item.ID, err)
		}

		planned = append(planned, PlannedItem{
			Item:      item,
			Placement: placement,
			Action:    action,
			Cleanup:   cleanup,
		})
	}

	return planned, nil
}

// Run processes items in order and stops at the first error. Outcomes of the
// items completed before the error are still returned in the report.
func (s *SyncService) Run(ctx context.Context, items []domain.Item, opts RunOptions) (Report, error) {
	report := Report{
		RunID:     s.runID,
		StartedAt: s.clock.Now(),
		Outcomes:  make([]Outcome, 0, len(items)),
	}

	s.progress.Start(len(items))
	defer s.progress.Finish()

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			report.FinishedAt = s.clock.Now()
			return report, err
		}

		started := s.clock.Now()
		outcome, err := s.syncItem(ctx, item, opts)
		if err != nil {
			report.FinishedAt = s.clock.Now()
			return report, fmt.Errorf("sync mod %s (%s): %w", item.Name, item.ID, err)
		}
		outcome.Elapsed = s.clock.Now().Sub(started)

		report.Outcomes = append(report.Outcomes, outcome)
		s.progress.Advance(item, outcome.Action)
	}

	report.FinishedAt = s.clock.Now()
	s.logger.Info().
		Int("downloaded", report.Count(domain.ActionDownload)).
		Int("copied", report.Count(domain.ActionReuse)).
		Int("skipped", report.Count(domain.ActionSkip)).
		Msg("all mods checked out")

	return report, nil
}

func (s *SyncService) syncItem(ctx context.Context, item domain.Item, opts RunOptions) (Outcome, error) {
	placement := s.roots.For(item.ID)
	logger := s.logger.With().Stringer("mod_id", item.ID).Str("mod", item.Name).Logger()

	action, cleanup, err := s.decide(ctx, placement, opts)
	if err != nil {
		return Outcome{}, err
	}
	outcome := Outcome{Item: item, Action: action, Cleanup: cleanup}

	if cleanup.Destination {
		logger.Info().Str("path", placement.Destination).Msg("removing mod folder (clean)")
		if err := s.dirs.RemoveAll(ctx, placement.Destination); err != nil {
			return Outcome{}, err
		}
	}
	if cleanup.Staging {
		logger.Info().Str("path", placement.Staging).Msg("removing staged download (clean)")
		if err := s.dirs.RemoveAll(ctx, placement.Staging); err != nil {
			return Outcome{}, err
		}
	}

	switch action {
	case domain.ActionSkip:
		logger.Info().Msg("mod already exists, skipping")
		return outcome, nil
	case domain.ActionReuse:
		logger.Info().Msg("mod already downloaded, moving")
	case domain.ActionDownload:
		logger.Info().Msg("downloading mod")
		attempts, err := Retry(ctx, s.attempts, func(ctx context.Context, attempt int) error {
			err := s.client.Download(ctx, item)
			if err != nil {
				logger.Warn().Err(err).Int("attempt", attempt).Int("max_attempts", s.attempts).Msg("mod download failed")
			}
			return err
		})
		outcome.Attempts = attempts
		if err != nil {
			return Outcome{}, fmt.Errorf("download: %w", err)
		}

		if err := s.waiter.WaitForDir(ctx, placement.Staging); err != nil {
			return Outcome{}, err
		}
		logger.Info().Int("attempts", attempts).Msg("mod downloaded")
	}

	if err := s.place(ctx, placement); err != nil {
		return Outcome{}, err
	}

	return outcome, nil
}

func (s *SyncService) place(ctx context.Context, placement domain.Placement) error {
	if err := s.dirs.EnsureDir(ctx, placement.Destination); err != nil {
		return err
	}
	return s.dirs.CopyContents(ctx, placement.Staging, placement.Destination)
}

// decide applies the placement rules: a populated destination is kept unless
// cleaning, a populated staging directory is reused unless cleaning, and
// everything else is downloaded. Under clean both directories are removed
// whenever they exist.
func (s *SyncService) decide(ctx context.Context, placement domain.Placement, opts RunOptions) (domain.Action, domain.Cleanup, error) {
	var cleanup domain.Cleanup

	destIsDir, err := s.dirs.IsDir(ctx, placement.Destination)
	if err != nil {
		return "", cleanup, err
	}
	if destIsDir {
		if opts.Clean {
			cleanup.Destination = true
		} else {
			populated, err := s.dirs.HasEntries(ctx, placement.Destination)
			if err != nil {
				return "", cleanup, err
			}
			if populated {
				return domain.ActionSkip, cleanup, nil
			}
		}
	}

	stagingIsDir, err := s.dirs.IsDir(ctx, placement.Staging)
	if err != nil {
		return "", cleanup, err
	}
	if stagingIsDir {
		if opts.Clean {
			cleanup.Staging = true
		} else {
			populated, err := s.dirs.HasEntries(ctx, placement.Staging)
			if err != nil {
				return "", cleanup, err
			}
			if populated {
				return domain.ActionReuse, cleanup, nil
			}
		}
	}

	return domain.ActionDownload, cleanup, nil
}
