package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/yuqie6/stresssense/internal/schema"
	"github.com/yuqie6/stresssense/internal/service"
)

const separator = "═══════════════════════════════════════"

var slotGlyph = map[schema.HourSlot]string{
	schema.SlotRest:  "🟩",
	schema.SlotStudy: "🟥",
	schema.SlotGame:  "🟦",
	schema.SlotOther: "🟨",
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

// printEvaluation 输出小时网格、分数与建议
func printEvaluation(w io.Writer, f service.Formula, ev service.Evaluation) {
	fmt.Fprintf(w, "🧠 今日压力评估（%s 公式）\n", f)
	fmt.Fprintln(w, separator)

	fmt.Fprintln(w, "\n🕒 小时分布")
	for start := 0; start < schema.HoursPerDay; start += 6 {
		cells := make([]string, 0, 6)
		for h := start; h < start+6; h++ {
			cells = append(cells, fmt.Sprintf("%02d %s", h, slotGlyph[ev.Ledger[h]]))
		}
		fmt.Fprintf(w, "  %s\n", strings.Join(cells, "  "))
	}
	fmt.Fprintf(w, "  🟩 休息 %dh  🟥 学习 %dh  🟦 游戏 %dh  🟨 其他 %dh\n",
		ev.Totals.Rest, ev.Totals.Study, ev.Totals.Game, ev.Totals.Other)

	fmt.Fprintln(w, "\n📊 指标")
	fmt.Fprintf(w, "  • 压力分数: %d / 100\n", ev.Score)
	fmt.Fprintf(w, "  • 状态: %s\n", ev.Advice.Status)
	fmt.Fprintf(w, "  • 峰值: %d\n", ev.Signals.Peak)
	fmt.Fprintf(w, "  • 晚间均值: %.1f\n", ev.Signals.EveningAvg)
	fmt.Fprintf(w, "  • 最长连续学习: %d 小时\n", ev.Signals.StudyStreak)

	fmt.Fprintln(w, "\n📈 逐小时走势")
	fmt.Fprintf(w, "  %s\n", joinInts(ev.Trend[:]))

	fmt.Fprintln(w, "\n💡 建议")
	for _, line := range strings.Split(ev.Advice.Text, "\n") {
		fmt.Fprintf(w, "  %s\n", line)
	}
	fmt.Fprintln(w, "\n"+separator)
}

// printQuick 输出快速模式结果
func printQuick(w io.Writer, r service.QuickResult) {
	fmt.Fprintln(w, "⚡ 快速压力估算")
	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "  • 休息 %.1fh · 学习 %.1fh · 游戏 %.1fh · 其他 %.1fh\n",
		r.Hours.Rest, r.Hours.Study, r.Hours.Game, r.Hours.Other)
	fmt.Fprintf(w, "  • 压力分数: %.1f / 100\n", r.Score)
	fmt.Fprintf(w, "  • 等级: %s\n", r.Level)
	fmt.Fprintln(w, "\n💡 建议")
	for _, rec := range r.Recommendations {
		fmt.Fprintf(w, "  • %s\n", rec)
	}
	fmt.Fprintln(w, separator)
}

// printHistory 输出历史表格与压力折线
func printHistory(w io.Writer, previews []service.SummaryPreview) {
	if len(previews) == 0 {
		fmt.Fprintln(w, "📚 还没有历史记录")
		fmt.Fprintln(w, "   先使用 'stress-cli save' 或 'stress-cli dashboard' 保存一天")
		return
	}

	rows := make([][]string, 0, len(previews))
	for _, p := range previews {
		rows = append(rows, []string{
			p.Date,
			fmt.Sprint(p.Rest),
			fmt.Sprint(p.Study),
			fmt.Sprint(p.Game),
			fmt.Sprint(p.Other),
			fmt.Sprint(p.Stress),
			string(p.Status),
			p.Preview,
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("日期", "休息", "学习", "游戏", "其他", "压力", "状态", "摘要").
		Rows(rows...)

	fmt.Fprintf(w, "📅 历史记录（%d 条）\n", len(previews))
	fmt.Fprintln(w, t.Render())

	fmt.Fprintln(w, "\n📈 压力走势")
	for _, p := range previews {
		fmt.Fprintf(w, "  %s %3d %s\n", p.Date, p.Stress, strings.Repeat("█", stressBar(p.Stress)))
	}
}

// stressBar 每 5 分一格
func stressBar(stress int) int {
	return min(max(stress, 0), 100) / 5
}

func joinInts(values []int) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, fmt.Sprint(v))
	}
	return strings.Join(parts, " ")
}
