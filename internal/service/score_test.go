package service

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/yuqie6/stresssense/internal/schema"
)

// ledgerOf 按顺序拼接 (slot, 小时数)，不足 24 小时的部分保持 rest
func ledgerOf(t *testing.T, parts ...any) schema.DayLedger {
	t.Helper()
	l := schema.NewDayLedger()
	h := 0
	for i := 0; i+1 < len(parts); i += 2 {
		slot := parts[i].(schema.HourSlot)
		n := parts[i+1].(int)
		for j := 0; j < n; j++ {
			if err := l.Set(h, slot); err != nil {
				t.Fatalf("ledgerOf: %v", err)
			}
			h++
		}
	}
	return l
}

func TestComputeTrendAllRest(t *testing.T) {
	score, trend := ComputeTrend(schema.NewDayLedger())
	if score != 0 {
		t.Fatalf("score=%d, want 0", score)
	}
	for i, v := range trend {
		if v != 0 {
			t.Fatalf("trend[%d]=%d, want 0", i, v)
		}
	}
}

func TestComputeTrendAllStudySaturates(t *testing.T) {
	l := ledgerOf(t, schema.SlotStudy, 24)
	score, trend := ComputeTrend(l)
	if score != 100 {
		t.Fatalf("score=%d, want 100", score)
	}
	if trend[11] != 96 || trend[12] != 100 {
		t.Fatalf("trend[11]=%d trend[12]=%d, want 96 and 100", trend[11], trend[12])
	}
}

func TestComputeTrendClampsEveryStep(t *testing.T) {
	// 先休息再学习：逐步截断时 rest 不会把分数压成负数
	l := ledgerOf(t, schema.SlotRest, 12, schema.SlotStudy, 12)
	score, _ := ComputeTrend(l)
	if score != 96 {
		t.Fatalf("hourly score=%d, want 96", score)
	}

	totalsScore, _ := ComputeTrendWith(FormulaTotals, l)
	if totalsScore != 0 {
		t.Fatalf("totals score=%d, want 0", totalsScore)
	}
}

func TestComputeTrendConcreteDay(t *testing.T) {
	l := ledgerOf(t,
		schema.SlotStudy, 12,
		schema.SlotRest, 4,
		schema.SlotGame, 5,
		schema.SlotOther, 3,
	)
	score, trend := ComputeTrend(l)
	if trend[11] != 96 {
		t.Fatalf("trend[11]=%d, want 96", trend[11])
	}
	if score != 94 {
		t.Fatalf("score=%d, want 94", score)
	}
}

func TestComputeTrendRangeInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for n := 0; n < 500; n++ {
		var l schema.DayLedger
		for i := range l {
			l[i] = schema.AllSlots[rng.Intn(len(schema.AllSlots))]
		}
		for _, f := range []Formula{FormulaHourly, FormulaTotals} {
			score, trend := ComputeTrendWith(f, l)
			if score < MinScore || score > MaxScore {
				t.Fatalf("%s score=%d out of range", f, score)
			}
			for i, v := range trend {
				if v < MinScore || v > MaxScore {
					t.Fatalf("%s trend[%d]=%d out of range", f, i, v)
				}
			}
			if trend[schema.HoursPerDay-1] != score {
				t.Fatalf("%s last trend=%d, score=%d", f, trend[schema.HoursPerDay-1], score)
			}
		}
	}
}

func TestScoreTotals(t *testing.T) {
	cases := []struct {
		hours HourTotals
		want  float64
	}{
		{HourTotals{Rest: 8, Study: 6, Game: 2, Other: 2}, 0},
		{HourTotals{Rest: 4, Study: 8, Game: 2, Other: 2}, 38},
		{HourTotals{Rest: 0, Study: 16, Game: 4, Other: 4}, 100},
		{HourTotals{Rest: 1.5, Study: 3.5}, 12.5},
	}
	for _, tc := range cases {
		if got := ScoreTotals(tc.hours); got != tc.want {
			t.Fatalf("ScoreTotals(%+v)=%v, want %v", tc.hours, got, tc.want)
		}
	}
}

func TestParseHourTotals(t *testing.T) {
	h, err := ParseHourTotals("7.5", " 8 ", "2", "0")
	if err != nil {
		t.Fatalf("ParseHourTotals error: %v", err)
	}
	if h.Rest != 7.5 || h.Study != 8 || h.Game != 2 || h.Other != 0 {
		t.Fatalf("hours=%+v", h)
	}

	for _, bad := range []string{"", "abc", "NaN", "Inf"} {
		if _, err := ParseHourTotals("8", bad, "0", "0"); !errors.Is(err, ErrInvalidHours) {
			t.Fatalf("study=%q err=%v, want ErrInvalidHours", bad, err)
		}
	}
}

func TestParseFormula(t *testing.T) {
	if f, err := ParseFormula(""); err != nil || f != FormulaHourly {
		t.Fatalf("empty formula=%q err=%v", f, err)
	}
	if f, err := ParseFormula("TOTALS"); err != nil || f != FormulaTotals {
		t.Fatalf("TOTALS formula=%q err=%v", f, err)
	}
	if _, err := ParseFormula("average"); err == nil {
		t.Fatalf("expected error for unknown formula")
	}
}
