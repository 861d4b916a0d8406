package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/yuqie6/stresssense/internal/schema"
)

func TestHistoryServiceSwallowsReadError(t *testing.T) {
	svc := NewHistoryService(&fakeHistoryStore{readErr: errors.New("permission denied")})
	got := svc.History(context.Background())
	if got == nil || len(got) != 0 {
		t.Fatalf("history=%v, want empty non-nil log", got)
	}
}

func TestHistoryServiceSeriesKeepsOrder(t *testing.T) {
	store := &fakeHistoryStore{records: schema.HistoryLog{
		{Date: "2026-03-02", Stress: 40},
		{Date: "2026-03-01", Stress: 10},
		{Date: "2026-03-02", Stress: 55},
	}}
	series := NewHistoryService(store).StressSeries(context.Background())
	if len(series) != 3 {
		t.Fatalf("len=%d, want 3", len(series))
	}
	if series[0].Stress != 40 || series[1].Date != "2026-03-01" || series[2].Stress != 55 {
		t.Fatalf("series=%+v", series)
	}
}

func TestHistoryServicePreviews(t *testing.T) {
	store := &fakeHistoryStore{records: schema.HistoryLog{
		{Date: "2026-03-01", Summary: "🚨 CRITICAL BURNOUT\nStop work immediately. Sleep 8+ hrs.\nTomorrow risk: VERY HIGH"},
	}}
	got := NewHistoryService(store).Previews(context.Background())
	if len(got) != 1 {
		t.Fatalf("len=%d", len(got))
	}
	if strings.Contains(got[0].Preview, "\n") {
		t.Fatalf("preview contains newline: %q", got[0].Preview)
	}
	if !strings.HasSuffix(got[0].Preview, "…") || len([]rune(got[0].Preview)) > summaryPreviewRunes+1 {
		t.Fatalf("preview=%q not truncated", got[0].Preview)
	}
}

func TestHistoryServiceNilStore(t *testing.T) {
	var svc *HistoryService
	if got := svc.History(context.Background()); len(got) != 0 {
		t.Fatalf("history=%v", got)
	}
}

func TestTruncateRunes(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"", 5, ""},
		{"短文本", 5, "短文本"},
		{"压力过高需要休息", 4, "压力过高…"},
		{"ab cd", 3, "ab…"},
		{"abc", 0, ""},
	}
	for _, c := range cases {
		if got := truncateRunes(c.in, c.max); got != c.want {
			t.Fatalf("truncateRunes(%q,%d)=%q, want %q", c.in, c.max, got, c.want)
		}
	}
}

// datedStore 同时支持按日期查询的假存储
type datedStore struct {
	fakeHistoryStore
	lookups []string
}

func (d *datedStore) GetByDate(ctx context.Context, date string) (schema.HistoryLog, error) {
	d.lookups = append(d.lookups, date)
	if d.readErr != nil {
		return nil, d.readErr
	}
	return schema.HistoryLog{{Date: date, Stress: 77}}, nil
}

func TestHistoryServiceOnDateFiltersInOrder(t *testing.T) {
	store := &fakeHistoryStore{records: schema.HistoryLog{
		{Date: "2026-03-02", Stress: 40},
		{Date: "2026-03-01", Stress: 10},
		{Date: "2026-03-02", Stress: 55},
	}}
	got := NewHistoryService(store).OnDate(context.Background(), "2026-03-02")
	if len(got) != 2 || got[0].Stress != 40 || got[1].Stress != 55 {
		t.Fatalf("on date=%+v", got)
	}
	if none := NewHistoryService(store).OnDate(context.Background(), "2026-04-01"); none == nil || len(none) != 0 {
		t.Fatalf("no match=%v, want empty non-nil log", none)
	}
}

func TestHistoryServiceOnDateUsesLookup(t *testing.T) {
	store := &datedStore{}
	got := NewHistoryService(store).PreviewsOn(context.Background(), "2026-03-09")
	if len(store.lookups) != 1 || store.lookups[0] != "2026-03-09" {
		t.Fatalf("lookups=%v", store.lookups)
	}
	if len(got) != 1 || got[0].Stress != 77 {
		t.Fatalf("previews=%+v", got)
	}

	store.readErr = errors.New("database is locked")
	if got := NewHistoryService(store).OnDate(context.Background(), "2026-03-09"); got == nil || len(got) != 0 {
		t.Fatalf("on error=%v, want empty non-nil log", got)
	}
}
