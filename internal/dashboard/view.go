package dashboard

import (
	"fmt"
	"strings"
	"time"

	"scrapewatch/internal/metrics"
	"scrapewatch/internal/ui"
)

// renderReport draws the full report view.
func (m Model) renderReport() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if m.report == nil {
		b.WriteString(MutedStyle.Render("collecting first report..."))
		b.WriteString("\n")
		return b.String()
	}

	r := m.report
	b.WriteString(renderWorker(r))
	b.WriteString(renderSession(r))
	b.WriteString(renderResources(r))
	b.WriteString(renderNetwork(r))
	b.WriteString(renderFiles(r))
	b.WriteString(renderProgress(r))
	b.WriteString(renderRecent(r))

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(WarningStyle.Render(m.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(FooterStyle.Render(
		"[r]efresh  [l]ive log  [s]ession attach  [k] stop worker  [q]uit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderHeader() string {
	target := "local"
	if m.report != nil && m.report.Target != "" {
		target = m.report.Target
	} else if m.cfg.Remote != "" {
		target = m.cfg.Remote
	}

	title := HeaderStyle.Render("scrapewatch") + "  " +
		LabelStyle.Render("supervising ") + ValueStyle.Render(target)

	age := ""
	if m.refreshing {
		age = MutedStyle.Render("  refreshing...")
	} else if m.report != nil {
		age = MutedStyle.Render(fmt.Sprintf("  updated %ds ago, refresh every %s",
			m.SecondsSinceUpdate(), m.interval))
	}
	return title + age
}

func (m Model) renderConfirm() string {
	return ModalStyle.Render(
		"Stop the worker and kill session '" + m.cfg.Session + "'?  " +
			CriticalStyle.Render("[y]") + " yes  " +
			MutedStyle.Render("any other key cancels"))
}

// renderFollow draws the live log view.
func (m Model) renderFollow() string {
	header := HeaderStyle.Render("scrapewatch") + "  " +
		LabelStyle.Render("following ") + ValueStyle.Render(m.cfg.Log.File)
	body := MutedStyle.Render("waiting for new log lines...")
	if m.follow != nil && m.follow.ready && len(m.follow.lines) > 0 {
		body = m.follow.viewport.View()
	}
	footer := FooterStyle.Render("[q/esc] back to dashboard  arrows/pgup/pgdn scroll")
	return header + "\n" + body + "\n" + footer
}

func renderWorker(r *Report) string {
	var b strings.Builder
	b.WriteString(SectionTitleStyle.Render("Worker"))
	b.WriteString("\n")

	switch {
	case r.ProcessErr != nil:
		b.WriteString("  " + WarningStyle.Render(ui.SymbolWarn+" liveness unknown"))
		b.WriteString(MutedStyle.Render("  " + r.ProcessErr.Error()))
	case r.Process.Running:
		line := fmt.Sprintf("%s running  pid %d", ui.SymbolSuccess, r.Process.PID)
		if !r.Process.StartedAt.IsZero() {
			line += "  up " + formatDuration(r.Process.Uptime(time.Now()))
		}
		b.WriteString("  " + HealthyStyle.Render(line))
		if r.Process.Ambiguous {
			b.WriteString("\n  " + WarningStyle.Render(fmt.Sprintf(
				"%s %d processes match; showing the first", ui.SymbolWarn, r.Process.Matches)))
		}
	default:
		b.WriteString("  " + CriticalStyle.Render(ui.SymbolFail+" not running"))
	}
	b.WriteString("\n")
	return b.String()
}

func renderSession(r *Report) string {
	var b strings.Builder
	b.WriteString(SectionTitleStyle.Render("Session"))
	b.WriteString("\n")

	switch {
	case !r.TmuxFound:
		b.WriteString("  " + WarningStyle.Render(ui.SymbolWarn+" tmux not installed; attach and stop unavailable"))
	case r.SessionErr != nil:
		b.WriteString("  " + WarningStyle.Render(ui.SymbolWarn+" "+r.SessionErr.Error()))
	case r.Session.Exists:
		line := fmt.Sprintf("%s tmux session '%s'", ui.SymbolSuccess, r.Session.Name)
		if r.Session.Attached {
			line += "  (a client is attached)"
		}
		b.WriteString("  " + HealthyStyle.Render(line))
	default:
		b.WriteString("  " + MutedStyle.Render(fmt.Sprintf(
			"%s no session '%s'", ui.SymbolPending, r.Session.Name)))
	}
	b.WriteString("\n")
	return b.String()
}

func renderResources(r *Report) string {
	var b strings.Builder
	b.WriteString(SectionTitleStyle.Render("Resources"))
	b.WriteString("\n  ")

	s := r.Resources
	parts := make([]string, 0, 4)

	if s.Has(metrics.MetricCPU) {
		parts = append(parts, LabelStyle.Render("CPU ")+
			utilizationStyle(s.CPUPercent).Render(fmt.Sprintf("%.1f%%", s.CPUPercent)))
	} else {
		parts = append(parts, MutedStyle.Render("CPU n/a"))
	}

	if s.Has(metrics.MetricMemory) {
		parts = append(parts, LabelStyle.Render("Mem ")+
			utilizationStyle(s.MemPercent()).Render(fmt.Sprintf("%s/%s (%.0f%%)",
				formatBytes(s.MemUsed), formatBytes(s.MemTotal), s.MemPercent())))
	} else {
		parts = append(parts, MutedStyle.Render("Mem n/a"))
	}

	if s.Has(metrics.MetricSwap) {
		parts = append(parts, LabelStyle.Render("Swap ")+
			ValueStyle.Render(fmt.Sprintf("%s/%s",
				formatBytes(s.SwapUsed), formatBytes(s.SwapTotal))))
	} else {
		parts = append(parts, MutedStyle.Render("Swap n/a"))
	}

	if s.Has(metrics.MetricDisk) {
		parts = append(parts, LabelStyle.Render("Disk ")+
			utilizationStyle(s.DiskPercent()).Render(fmt.Sprintf("%s/%s (%.0f%%)",
				formatBytes(s.DiskUsed), formatBytes(s.DiskTotal), s.DiskPercent())))
	} else {
		parts = append(parts, MutedStyle.Render("Disk n/a"))
	}

	b.WriteString(strings.Join(parts, "   "))
	b.WriteString("\n")
	return b.String()
}

func renderNetwork(r *Report) string {
	var b strings.Builder
	b.WriteString(SectionTitleStyle.Render("Network"))
	b.WriteString("\n")
	if r.Net.Reachable {
		b.WriteString("  " + HealthyStyle.Render(fmt.Sprintf("%s %s reachable (%dms)",
			ui.SymbolSuccess, r.Net.URL, r.Net.Latency.Milliseconds())))
	} else {
		b.WriteString("  " + WarningStyle.Render(fmt.Sprintf("%s %s unreachable",
			ui.SymbolWarn, r.Net.URL)))
	}
	b.WriteString("\n")
	return b.String()
}

func renderFiles(r *Report) string {
	var b strings.Builder
	b.WriteString(SectionTitleStyle.Render("Files"))
	b.WriteString("\n")

	if r.ArtifactsErr != nil {
		b.WriteString("  " + MutedStyle.Render(r.ArtifactsErr.Error()))
		b.WriteString("\n")
		return b.String()
	}

	a := r.Artifacts
	b.WriteString("  " + ValueStyle.Render(fmt.Sprintf("%d spreadsheet, %d csv",
		a.ExcelCount, a.CSVCount)))
	if a.Latest != nil {
		line := fmt.Sprintf("   latest %s (%s, %s ago",
			a.Latest.Path, formatBytes(a.Latest.SizeBytes),
			formatDuration(time.Since(a.Latest.ModifiedAt)))
		if a.Latest.RowCount != nil {
			line += fmt.Sprintf(", %d rows", *a.Latest.RowCount)
		}
		line += ")"
		b.WriteString(LabelStyle.Render(line))
	}
	b.WriteString("\n")
	return b.String()
}

func renderProgress(r *Report) string {
	var b strings.Builder
	b.WriteString(SectionTitleStyle.Render("Progress"))
	b.WriteString("\n")

	if r.LogErr != nil {
		b.WriteString("  " + MutedStyle.Render(r.LogErr.Error()))
		b.WriteString("\n")
		return b.String()
	}

	l := r.Log
	b.WriteString("  " + strings.Join([]string{
		LabelStyle.Render("searches ") + ValueStyle.Render(fmt.Sprintf("%d", l.SearchCount)),
		LabelStyle.Render("found ") + ValueStyle.Render(fmt.Sprintf("%d", l.ShopsFound)),
		LabelStyle.Render("locations done ") + ValueStyle.Render(fmt.Sprintf("%d", l.LocationsDone)),
		LabelStyle.Render("success ") + HealthyStyle.Render(fmt.Sprintf("%d", l.SuccessCount)),
		LabelStyle.Render("errors ") + errorCountStyle(l.ErrorCount).Render(fmt.Sprintf("%d", l.ErrorCount)),
	}, "   "))
	b.WriteString("\n")
	return b.String()
}

func renderRecent(r *Report) string {
	if r.LogErr != nil {
		return ""
	}

	var b strings.Builder
	if len(r.Log.RecentErrors) > 0 {
		b.WriteString(SectionTitleStyle.Render("Recent errors"))
		b.WriteString("\n")
		for _, line := range r.Log.RecentErrors {
			b.WriteString("  " + CriticalStyle.Render(line) + "\n")
		}
	}
	if len(r.Log.RecentNewItems) > 0 {
		b.WriteString(SectionTitleStyle.Render("Recent finds"))
		b.WriteString("\n")
		for _, line := range r.Log.RecentNewItems {
			b.WriteString("  " + MutedStyle.Render(line) + "\n")
		}
	}
	return b.String()
}
