package application

import (
	"time"

	"github.com/bnema/workshop-sync/internal/domain"
)

type RunOptions struct {
	Clean bool
}

type PlannedItem struct {
	Item      domain.Item
	Placement domain.Placement
	Action    domain.Action
	Cleanup   domain.Cleanup
}

type Outcome struct {
	Item     domain.Item
	Action   domain.Action
	Cleanup  domain.Cleanup
	Attempts int
	Elapsed  time.Duration
}

type Report struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Outcomes   []Outcome
}

func (r Report) Count(action domain.Action) int {
	n := 0
	for _, outcome := range r.Outcomes {
		if outcome.Action == action {
			n++
		}
	}
	return n
}

func (r Report) Duration() time.Duration {
	if r.FinishedAt.Before(r.StartedAt) {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
