package summary

import (
	"fmt"
	"time"

	"github.com/bnema/workshop-sync/internal/application"
	"github.com/bnema/workshop-sync/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	// ShowPaths adds the destination and staging paths under each mod.
	ShowPaths bool
}

func renderReport(report application.Report, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Workshop sync"),
		s.header.Render(countsLine(len(report.Outcomes), report.Count)),
	}
	if report.RunID != "" {
		lines = append(lines, s.header.Render("run: "+report.RunID))
	}

	if len(report.Outcomes) == 0 {
		lines = append(lines, s.empty.Render("No mods processed."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	rows := make([]string, 0, len(report.Outcomes))
	for _, outcome := range report.Outcomes {
		rows = append(rows, outcomeLine(outcome, s))
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
	lines = append(lines, s.section.Render(s.detail.Render("finished in "+formatElapsed(report.Duration()))))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderPlan(planned []application.PlannedItem, opts RenderOptions, s styles) string {
	counts := map[domain.Action]int{}
	for _, item := range planned {
		counts[item.Action]++
	}

	lines := []string{
		s.title.Render("Workshop sync plan"),
		s.header.Render(countsLine(len(planned), func(a domain.Action) int { return counts[a] })),
	}

	if len(planned) == 0 {
		lines = append(lines, s.empty.Render("Manifest lists no mods."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	rows := make([]string, 0, len(planned))
	for _, item := range planned {
		rows = append(rows, plannedLine(item, opts, s))
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func countsLine(total int, count func(domain.Action) int) string {
	return fmt.Sprintf("mods: %d  downloaded: %d  copied: %d  skipped: %d",
		total,
		count(domain.ActionDownload),
		count(domain.ActionReuse),
		count(domain.ActionSkip),
	)
}

func outcomeLine(outcome application.Outcome, s styles) string {
	parts := []string{
		s.mod.Render(outcome.Item.Name),
		" ",
		s.id.Render(outcome.Item.ID.String()),
		" ",
		actionLabel(outcome.Action, s),
	}
	if outcome.Action == domain.ActionDownload && outcome.Attempts > 1 {
		parts = append(parts, " ", s.warning.Render(fmt.Sprintf("(%d attempts)", outcome.Attempts)))
	}
	if outcome.Cleanup.Any() {
		parts = append(parts, " ", s.detail.Render("[cleaned]"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func plannedLine(item application.PlannedItem, opts RenderOptions, s styles) string {
	line := lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.mod.Render(item.Item.Name),
		" ",
		s.id.Render(item.Item.ID.String()),
		" ",
		actionLabel(item.Action, s),
	)

	var cleaned []string
	if item.Cleanup.Destination {
		cleaned = append(cleaned, "destination")
	}
	if item.Cleanup.Staging {
		cleaned = append(cleaned, "staging")
	}
	for _, which := range cleaned {
		line += " " + s.warning.Render("[remove "+which+"]")
	}

	if !opts.ShowPaths {
		return line
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		line,
		s.detail.Render("  destination: "+item.Placement.Destination),
		s.detail.Render("  staging:     "+item.Placement.Staging),
	)
}

func actionLabel(action domain.Action, s styles) string {
	switch action {
	case domain.ActionSkip:
		return s.action(action.Label(), s.skip)
	case domain.ActionReuse:
		return s.action(action.Label(), s.reuse)
	case domain.ActionDownload:
		return s.action(action.Label(), s.download)
	default:
		return s.action(string(action), s.detail)
	}
}

func formatElapsed(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(time.Second).String()
}
