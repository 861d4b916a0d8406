package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/yuqie6/stresssense/internal/schema"
)

type fakeHistoryStore struct {
	records   schema.HistoryLog
	appendErr error
	readErr   error
}

func (f *fakeHistoryStore) Append(ctx context.Context, record schema.DailyRecord) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.records = append(f.records, record)
	return nil
}

func (f *fakeHistoryStore) ReadAll(ctx context.Context) (schema.HistoryLog, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return append(schema.HistoryLog(nil), f.records...), nil
}

func TestDayTrackerStartsAllRest(t *testing.T) {
	tr := NewDayTracker(&fakeHistoryStore{}, "")
	if tr.Formula() != FormulaHourly {
		t.Fatalf("formula=%q, want hourly", tr.Formula())
	}
	ev := tr.Evaluate()
	if ev.Score != 0 || ev.Totals.Rest != 24 {
		t.Fatalf("eval=%+v", ev)
	}
	if ev.Advice.Rule != RuleUnderStimulation {
		t.Fatalf("rule=%s, want under_stimulation", ev.Advice.Rule)
	}
}

func TestDayTrackerSetHourAndReset(t *testing.T) {
	tr := NewDayTracker(&fakeHistoryStore{}, FormulaHourly)
	for h := 0; h < 6; h++ {
		if err := tr.SetHour(h, schema.SlotStudy); err != nil {
			t.Fatalf("SetHour error: %v", err)
		}
	}
	if err := tr.SetHour(30, schema.SlotStudy); !errors.Is(err, schema.ErrInvalidHour) {
		t.Fatalf("SetHour(30) err=%v", err)
	}

	ev := tr.Evaluate()
	if ev.Totals.Study != 6 || ev.Signals.StudyStreak != 6 {
		t.Fatalf("eval totals=%+v signals=%+v", ev.Totals, ev.Signals)
	}
	if ev.Trend[5] != 48 {
		t.Fatalf("trend[5]=%d, want 48", ev.Trend[5])
	}

	tr.Reset()
	if got := tr.Ledger().Totals(); got.Rest != 24 {
		t.Fatalf("after reset totals=%+v", got)
	}
}

func TestDayTrackerLedgerIsCopy(t *testing.T) {
	tr := NewDayTracker(nil, FormulaHourly)
	l := tr.Ledger()
	l[0] = schema.SlotGame
	if tr.Ledger()[0] != schema.SlotRest {
		t.Fatalf("mutating returned ledger changed the session")
	}
}

func TestDayTrackerSaveDay(t *testing.T) {
	store := &fakeHistoryStore{}
	tr := NewDayTracker(store, FormulaHourly)
	tr.now = func() time.Time { return time.Date(2026, 3, 14, 21, 0, 0, 0, time.Local) }
	tr.Load(ledgerFromPattern(t, "SSSS RR SSSS RR SSS RR GGGGGGG"))

	rec, err := tr.SaveDay(context.Background(), "")
	if err != nil {
		t.Fatalf("SaveDay error: %v", err)
	}

	want := schema.DailyRecord{
		Date:    "2026-03-14",
		Rest:    6,
		Study:   11,
		Game:    7,
		Other:   0,
		Stress:  66,
		Status:  schema.StatusWarning,
		Summary: "📚 ACADEMIC OVERLOAD\nReduce study by 1–2 hrs.\nUse active recall.",
	}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
	if len(store.records) != 1 {
		t.Fatalf("stored=%d, want 1", len(store.records))
	}

	// 同一天再次保存也会追加
	if _, err := tr.SaveDay(context.Background(), "2026-03-14"); err != nil {
		t.Fatalf("second SaveDay error: %v", err)
	}
	if len(store.records) != 2 {
		t.Fatalf("stored=%d, want 2", len(store.records))
	}
}

func TestDayTrackerSaveDayErrors(t *testing.T) {
	writeErr := errors.New("disk full")
	tr := NewDayTracker(&fakeHistoryStore{appendErr: writeErr}, FormulaHourly)
	if _, err := tr.SaveDay(context.Background(), ""); !errors.Is(err, writeErr) {
		t.Fatalf("err=%v, want wrapped disk full", err)
	}
	if _, err := tr.SaveDay(context.Background(), "14/03/2026"); err == nil {
		t.Fatalf("expected date format error")
	}
	if _, err := NewDayTracker(nil, FormulaHourly).SaveDay(context.Background(), ""); err == nil {
		t.Fatalf("expected error without store")
	}
}

func TestEvaluateTotalsFormula(t *testing.T) {
	l := ledgerFromPattern(t, "SSSSSSSSSSSS RRRR GGGGG OOO")
	ev := Evaluate(FormulaTotals, l)
	// 84 - 32 + 15 + 12 = 79
	if ev.Score != 79 {
		t.Fatalf("score=%d, want 79", ev.Score)
	}
	if ev.Advice.Rule != RuleFatigueAlert {
		t.Fatalf("rule=%s, want fatigue_alert", ev.Advice.Rule)
	}
}

func TestDayTrackerSnapshotIsIndependent(t *testing.T) {
	store := &fakeHistoryStore{}
	tr := NewDayTracker(store, FormulaHourly)
	_ = tr.SetHour(3, schema.SlotStudy)

	snap := tr.Snapshot()
	_ = tr.SetHour(4, schema.SlotGame)

	if got := snap.Ledger()[4]; got != schema.SlotRest {
		t.Fatalf("snapshot hour 4=%q, want rest", got)
	}
	if _, err := snap.SaveDay(context.Background(), "2026-02-02"); err != nil {
		t.Fatalf("SaveDay error: %v", err)
	}
	if len(store.records) != 1 || store.records[0].Study != 1 || store.records[0].Game != 0 {
		t.Fatalf("records=%+v", store.records)
	}
}
