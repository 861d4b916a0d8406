package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/yuqie6/stresssense/internal/schema"
)

var (
	slotColors = map[schema.HourSlot]lipgloss.Color{
		schema.SlotRest:  lipgloss.Color("#10b981"),
		schema.SlotStudy: lipgloss.Color("#ef4444"),
		schema.SlotGame:  lipgloss.Color("#6366f1"),
		schema.SlotOther: lipgloss.Color("#f59e0b"),
	}

	statusColors = map[schema.Status]lipgloss.Color{
		schema.StatusDanger:   lipgloss.Color("#ef4444"),
		schema.StatusWarning:  lipgloss.Color("#f59e0b"),
		schema.StatusUrgent:   lipgloss.Color("#f97316"),
		schema.StatusBalanced: lipgloss.Color("#6366f1"),
		schema.StatusCaution:  lipgloss.Color("#eab308"),
		schema.StatusHealthy:  lipgloss.Color("#10b981"),
	}

	mutedColor = lipgloss.Color("#6b7280")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f2f2f2")).Background(lipgloss.Color("#1e293b")).Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Foreground(mutedColor)
	valueStyle  = lipgloss.NewStyle().Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10b981"))

	cellStyle   = lipgloss.NewStyle().Width(6).Align(lipgloss.Center).Foreground(lipgloss.Color("#ffffff"))
	cursorStyle = lipgloss.NewStyle().Underline(true).Bold(true)

	cardStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(60)
)

func slotCell(slot schema.HourSlot, hour int, selected bool) string {
	label := hourLabel(hour)
	if selected {
		label = "[" + label + "]"
	}
	style := cellStyle.Background(slotColors[slot])
	if selected {
		style = style.Inherit(cursorStyle)
	}
	return style.Render(label)
}

func statusStyle(s schema.Status) lipgloss.Style {
	c, ok := statusColors[s]
	if !ok {
		c = mutedColor
	}
	return lipgloss.NewStyle().Bold(true).Foreground(c)
}
