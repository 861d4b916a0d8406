package service

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/yuqie6/stresssense/internal/schema"
)

// Formula 压力计算公式
type Formula string

const (
	// FormulaHourly 逐小时累加并在每一步截断到 [0,100]（默认）
	FormulaHourly Formula = "hourly"
	// FormulaTotals 按总时长加权求和，只在最后截断一次
	FormulaTotals Formula = "totals"
)

const (
	MinScore = 0
	MaxScore = 100
)

// ErrInvalidHours 快速模式输入的小时数不是数字
var ErrInvalidHours = errors.New("小时数必须是数字")

// 逐小时公式的每小时增量
var hourlyDelta = map[schema.HourSlot]int{
	schema.SlotStudy: 8,
	schema.SlotGame:  2,
	schema.SlotOther: 4,
	schema.SlotRest:  -6,
}

// 总时长公式的权重，rest 为减项
var totalsWeight = map[schema.HourSlot]float64{
	schema.SlotStudy: 7,
	schema.SlotGame:  3,
	schema.SlotOther: 4,
	schema.SlotRest:  -8,
}

// ParseFormula 解析配置中的公式名，空值视为默认
func ParseFormula(s string) (Formula, error) {
	switch Formula(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormulaHourly:
		return FormulaHourly, nil
	case FormulaTotals:
		return FormulaTotals, nil
	default:
		return "", fmt.Errorf("未知的计算公式: %q", s)
	}
}

// ComputeTrend 默认公式：返回最终分数和每小时走势，最后一个走势值等于分数
func ComputeTrend(ledger schema.DayLedger) (int, schema.StressTrend) {
	var trend schema.StressTrend
	acc := 0
	for i, slot := range ledger {
		acc = clampInt(acc+hourlyDelta[slot], MinScore, MaxScore)
		trend[i] = acc
	}
	return acc, trend
}

// ComputeTrendWith 按指定公式计算
func ComputeTrendWith(f Formula, ledger schema.DayLedger) (int, schema.StressTrend) {
	if f != FormulaTotals {
		return ComputeTrend(ledger)
	}

	// 走势取未截断部分和的截断值，不影响累加本身
	var trend schema.StressTrend
	sum := 0.0
	for i, slot := range ledger {
		sum += totalsWeight[slot]
		trend[i] = int(clampFloat(sum, MinScore, MaxScore))
	}
	return trend[schema.HoursPerDay-1], trend
}

// HourTotals 快速模式输入的各类时长，可以是小数
type HourTotals struct {
	Rest  float64 `json:"rest"`
	Study float64 `json:"study"`
	Game  float64 `json:"game"`
	Other float64 `json:"other"`
}

// ParseHourTotals 把命令行输入转换为数字
func ParseHourTotals(rest, study, game, other string) (HourTotals, error) {
	var h HourTotals
	fields := []struct {
		name string
		raw  string
		dst  *float64
	}{
		{"rest", rest, &h.Rest},
		{"study", study, &h.Study},
		{"game", game, &h.Game},
		{"other", other, &h.Other},
	}
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f.raw), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return HourTotals{}, fmt.Errorf("%w: %s=%q", ErrInvalidHours, f.name, f.raw)
		}
		*f.dst = v
	}
	return h, nil
}

// ScoreTotals 总时长公式：加权求和后截断一次
func ScoreTotals(h HourTotals) float64 {
	raw := h.Study*totalsWeight[schema.SlotStudy] +
		h.Game*totalsWeight[schema.SlotGame] +
		h.Other*totalsWeight[schema.SlotOther] +
		h.Rest*totalsWeight[schema.SlotRest]
	return clampFloat(raw, MinScore, MaxScore)
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

func clampFloat(v float64, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
