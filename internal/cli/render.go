package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rpggio/okrboard/internal/domain/okr"
)

const barWidth = 20

var (
	colorAccent = lipgloss.Color("#5B8DEF")
	colorMuted  = lipgloss.AdaptiveColor{Light: "240", Dark: "243"}
	colorDone   = lipgloss.Color("#3FB950")
	colorRisk   = lipgloss.Color("#D29922")

	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	mutedStyle     = lipgloss.NewStyle().Foreground(colorMuted)
	objectiveStyle = lipgloss.NewStyle().Bold(true)
	cycleStyle     = lipgloss.NewStyle().Bold(true).Underline(true)
	boxStyle       = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)
)

// renderProject draws the project as a board: foundation, then objectives
// grouped by cycle with progress bars. Only the Active cycle is shown unless
// allCycles is set.
func renderProject(p *okr.Project, allCycles bool) string {
	var b strings.Builder

	header := []string{titleStyle.Render(p.Name)}
	if p.Foundation.Mission != "" {
		header = append(header, mutedStyle.Render("Mission: ")+p.Foundation.Mission)
	}
	if p.Foundation.Vision != "" {
		header = append(header, mutedStyle.Render("Vision:  ")+p.Foundation.Vision)
	}
	if len(p.Teams) > 0 {
		names := make([]string, 0, len(p.Teams))
		for _, t := range p.Teams {
			names = append(names, t.Name)
		}
		header = append(header, mutedStyle.Render("Teams:   ")+strings.Join(names, ", "))
	}
	b.WriteString(boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header...)))
	b.WriteString("\n")

	shown := 0
	for _, c := range p.Cycles {
		if !allCycles && c.Status != okr.CycleActive {
			continue
		}
		shown++
		b.WriteString("\n")
		b.WriteString(renderCycle(p, c))
	}
	if shown == 0 {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("No active cycle. Activate one with: okrboard cycle activate <cycle-id>"))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderCycle(p *okr.Project, c okr.Cycle) string {
	var b strings.Builder

	dates := c.StartDate
	if c.EndDate != "" {
		dates += " to " + c.EndDate
	}
	b.WriteString(cycleStyle.Render(c.Name))
	b.WriteString(" " + mutedStyle.Render(strings.TrimSpace(string(c.Status)+" "+dates)))
	b.WriteString("\n")

	count := 0
	for _, obj := range p.Objectives {
		if obj.CycleID != c.ID {
			continue
		}
		count++
		fmt.Fprintf(&b, "  %s %s %s\n",
			progressBar(obj.Progress),
			objectiveStyle.Render(obj.Title),
			mutedStyle.Render("("+p.OwnerName(obj.OwnerID)+") "+obj.ID))
		for _, kr := range obj.KeyResults {
			fmt.Fprintf(&b, "      %s %s %s\n",
				progressBar(kr.Progress),
				kr.Title,
				mutedStyle.Render(fmt.Sprintf("%s / %s (from %s)", formatNumber(kr.CurrentValue), formatNumber(kr.TargetValue), formatNumber(kr.StartValue))))
		}
	}
	if count == 0 {
		b.WriteString("  " + mutedStyle.Render("No objectives yet."))
		b.WriteString("\n")
	}
	return b.String()
}

func progressBar(pct int) string {
	filled := pct * barWidth / 100
	color := colorRisk
	if pct >= 70 {
		color = colorDone
	}
	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", barWidth-filled))
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
