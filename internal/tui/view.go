package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yuqie6/stresssense/internal/schema"
)

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

func (m Model) View() string {
	sections := []string{
		titleStyle.Render("🧠 StressSense 今日压力看板"),
		m.brushLine(),
		m.gridView(),
		m.metricsView(),
		m.adviceView(),
	}
	if h := m.historyView(); h != "" {
		sections = append(sections, h)
	}
	if m.err != nil {
		sections = append(sections, errorStyle.Render("❌ "+m.err.Error()))
	} else if m.notice != "" {
		sections = append(sections, noticeStyle.Render(m.notice))
	}
	sections = append(sections, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (m Model) brushLine() string {
	swatch := lipgloss.NewStyle().Foreground(slotColors[m.brush]).Render("██")
	return fmt.Sprintf("%s %s %s   %s %s",
		labelStyle.Render("画笔:"), swatch, valueStyle.Render(m.brush.Label()),
		labelStyle.Render("当前:"), valueStyle.Render(hourLabel(m.cursor)+":00"))
}

func (m Model) gridView() string {
	ledger := m.eval.Ledger
	rows := make([]string, 0, schema.HoursPerDay/gridColumns)
	for start := 0; start < schema.HoursPerDay; start += gridColumns {
		cells := make([]string, 0, gridColumns)
		for h := start; h < start+gridColumns; h++ {
			cells = append(cells, slotCell(ledger[h], h, h == m.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) metricsView() string {
	ev := m.eval
	score := statusStyle(ev.Advice.Status).Render(fmt.Sprintf("%d", ev.Score))
	line1 := fmt.Sprintf("%s %s   %s %d   %s %.1f   %s %dh",
		labelStyle.Render("压力:"), score,
		labelStyle.Render("峰值:"), ev.Signals.Peak,
		labelStyle.Render("晚间均值:"), ev.Signals.EveningAvg,
		labelStyle.Render("最长连续学习:"), ev.Signals.StudyStreak)
	line2 := fmt.Sprintf("%s 休息 %dh · 学习 %dh · 游戏 %dh · 其他 %dh",
		labelStyle.Render("分布:"), ev.Totals.Rest, ev.Totals.Study, ev.Totals.Game, ev.Totals.Other)
	line3 := labelStyle.Render("走势: ") + sparkline(ev.Trend[:])
	return strings.Join([]string{line1, line2, line3}, "\n")
}

func (m Model) adviceView() string {
	st := m.eval.Advice.Status
	header := statusStyle(st).Render(string(st))
	c, ok := statusColors[st]
	if !ok {
		c = mutedColor
	}
	return cardStyle.BorderForeground(c).Render(header + "\n" + m.eval.Advice.Text)
}

func (m Model) historyView() string {
	if len(m.recent) == 0 {
		return ""
	}
	start := max(0, len(m.recent)-recentHistory)
	lines := []string{labelStyle.Render("最近记录:")}
	for _, r := range m.recent[start:] {
		lines = append(lines, fmt.Sprintf("  %s  %3d  %s", r.Date, r.Stress, statusStyle(r.Status).Render(string(r.Status))))
	}
	return strings.Join(lines, "\n")
}

// sparkline 0–100 的分数映射为块字符
func sparkline(values []int) string {
	var b strings.Builder
	top := len(sparkRunes) - 1
	for _, v := range values {
		v = min(max(v, 0), 100)
		b.WriteRune(sparkRunes[v*top/100])
	}
	return b.String()
}

func hourLabel(hour int) string {
	return fmt.Sprintf("%02d", hour)
}
