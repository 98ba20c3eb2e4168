package summary

import (
	"testing"
	"time"

	"github.com/bnema/workshop-sync/internal/application"
	"github.com/bnema/workshop-sync/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderReport(t *testing.T) {
	started := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)

	output, err := RenderReport(application.Report{
		RunID:      "run-1",
		StartedAt:  started,
		FinishedAt: started.Add(42 * time.Second),
		Outcomes: []application.Outcome{
			{Item: domain.Item{ID: 818773962, Name: "HugsLib"}, Action: domain.ActionSkip},
			{Item: domain.Item{ID: 2009463077, Name: "Harmony"}, Action: domain.ActionDownload, Attempts: 2},
			{Item: domain.Item{ID: 1541721856, Name: "Camera+"}, Action: domain.ActionReuse, Cleanup: domain.Cleanup{Destination: true}},
		},
	}, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "Workshop sync")
	assert.Contains(t, output, "mods: 3  downloaded: 1  copied: 1  skipped: 1")
	assert.Contains(t, output, "run: run-1")
	assert.Contains(t, output, "HugsLib 818773962 already installed")
	assert.Contains(t, output, "Harmony 2009463077 downloaded (2 attempts)")
	assert.Contains(t, output, "Camera+ 1541721856 copied from staging [cleaned]")
	assert.Contains(t, output, "finished in 42s")
}

func TestRenderReportEmpty(t *testing.T) {
	output, err := RenderReport(application.Report{}, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "mods: 0")
	assert.Contains(t, output, "No mods processed.")
	assert.NotContains(t, output, "run:")
}

func TestRenderReportHidesSingleAttempt(t *testing.T) {
	output, err := RenderReport(application.Report{
		Outcomes: []application.Outcome{
			{Item: domain.Item{ID: 1, Name: "Harmony"}, Action: domain.ActionDownload, Attempts: 1},
		},
	}, RenderOptions{})

	require.NoError(t, err)
	assert.NotContains(t, output, "attempts)")
}

func TestRenderPlan(t *testing.T) {
	roots := domain.Roots{Destination: "/game/Mods", Staging: "/steam/content/294100"}

	output, err := RenderPlan([]application.PlannedItem{
		{
			Item:      domain.Item{ID: 1, Name: "Harmony"},
			Placement: roots.For(1),
			Action:    domain.ActionDownload,
			Cleanup:   domain.Cleanup{Destination: true, Staging: true},
		},
		{
			Item:      domain.Item{ID: 2, Name: "HugsLib"},
			Placement: roots.For(2),
			Action:    domain.ActionSkip,
		},
	}, RenderOptions{ShowPaths: true})

	require.NoError(t, err)
	assert.Contains(t, output, "Workshop sync plan")
	assert.Contains(t, output, "mods: 2  downloaded: 1  copied: 0  skipped: 1")
	assert.Contains(t, output, "Harmony 1 downloaded [remove destination] [remove staging]")
	assert.Contains(t, output, "destination: /game/Mods/1")
	assert.Contains(t, output, "staging:     /steam/content/294100/2")
}

func TestRenderPlanEmpty(t *testing.T) {
	output, err := RenderPlan(nil, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "Manifest lists no mods.")
}
