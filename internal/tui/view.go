package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/pomotui/internal/controller"
)

const (
	defaultBarColor = "#7571F9"
	fallbackWidth   = 60
	minContentWidth = 20
)

var (
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A")).
			Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	phaseStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	timeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

func (m *Model) render() string {
	contentWidth := m.contentWidth()
	innerWidth := contentWidth - frameStyle.GetHorizontalFrameSize()
	if innerWidth < 1 {
		innerWidth = 1
	}

	overview := frameStyle.Width(contentWidth - frameStyle.GetHorizontalBorderSize()).Render(
		lipgloss.JoinVertical(lipgloss.Center,
			titleStyle.Render("Timer Overview"),
			centered(phaseLine(m.state, innerWidth), innerWidth),
			centered(timeLine(m.state), innerWidth),
		),
	)

	m.bar.Width = innerWidth
	if m.state.Color != "" {
		m.bar.FullColor = m.state.Color
	}
	gauge := frameStyle.Width(contentWidth - frameStyle.GetHorizontalBorderSize()).Render(
		lipgloss.JoinVertical(lipgloss.Center,
			titleStyle.Render("Timer Progress"),
			m.bar.ViewAs(m.state.Ratio()),
			centered(labelStyle.Render(gaugeLabel(m.state)), innerWidth),
		),
	)

	m.help.Width = contentWidth
	content := lipgloss.JoinVertical(lipgloss.Center, overview, gauge, m.help.View(m.keys))
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return fallbackWidth
	}
	w := int(float64(m.width) * 0.70)
	if w < minContentWidth {
		w = minContentWidth
	}
	if w > m.width {
		w = m.width
	}
	return w
}

func phaseLine(state controller.DisplayState, width int) string {
	var b strings.Builder
	b.WriteString("Phase: ")
	b.WriteString(state.PhaseName)
	if state.Cycle > 0 {
		fmt.Fprintf(&b, " · cycle %d", state.Cycle+1)
	}
	line := runewidth.Truncate(b.String(), width, "…")
	if state.Paused {
		return phaseStyle.Render(line) + " " + pausedStyle.Render("[paused]")
	}
	return phaseStyle.Render(line)
}

func timeLine(state controller.DisplayState) string {
	return timeStyle.Render("Time: " + state.TimeLabel())
}

func gaugeLabel(state controller.DisplayState) string {
	return fmt.Sprintf("Timer: %.2f%%", state.Progress*100)
}

func centered(s string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}
