package service

import (
	"strings"
	"testing"

	"github.com/yuqie6/stresssense/internal/schema"
)

func TestQuickAnalyzeLevels(t *testing.T) {
	cases := []struct {
		hours HourTotals
		level schema.StressLevel
	}{
		{HourTotals{Rest: 8, Study: 6, Game: 2, Other: 2}, schema.LevelLow},
		{HourTotals{Rest: 4, Study: 8, Game: 2, Other: 2}, schema.LevelModerate},
		{HourTotals{Rest: 2, Study: 12, Game: 2, Other: 2}, schema.LevelHigh},
	}
	for _, tc := range cases {
		got := QuickAnalyze(tc.hours)
		if got.Level != tc.level {
			t.Fatalf("hours=%+v level=%s score=%v, want %s", tc.hours, got.Level, got.Score, tc.level)
		}
		if len(got.Recommendations) == 0 {
			t.Fatalf("no recommendations for %+v", tc.hours)
		}
	}
}

func TestQuickResultRecord(t *testing.T) {
	res := QuickAnalyze(HourTotals{Rest: 3.6, Study: 8.4, Game: 2, Other: 2})
	rec := res.Record("2026-04-01")
	if rec.Rest != 4 || rec.Study != 8 {
		t.Fatalf("rounded hours rest=%d study=%d", rec.Rest, rec.Study)
	}
	if rec.Status != schema.StatusCaution {
		t.Fatalf("status=%s, want Caution", rec.Status)
	}
	if !strings.HasPrefix(rec.Summary, string(schema.LevelModerate)) {
		t.Fatalf("summary=%q", rec.Summary)
	}
}
