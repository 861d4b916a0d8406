package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yuqie6/stresssense/internal/schema"
	"github.com/yuqie6/stresssense/internal/service"
)

type memStore struct {
	records   schema.HistoryLog
	appendErr error
}

func (s *memStore) Append(ctx context.Context, r schema.DailyRecord) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	s.records = append(s.records, r)
	return nil
}

func (s *memStore) ReadAll(ctx context.Context) (schema.HistoryLog, error) {
	return append(schema.HistoryLog(nil), s.records...), nil
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(store *memStore) Model {
	return New(service.NewDayTracker(store, service.FormulaHourly), service.NewHistoryService(store))
}

func press(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func TestPaintAdvancesCursorAndRescores(t *testing.T) {
	m := newTestModel(&memStore{})
	if m.Evaluation().Score != 0 {
		t.Fatalf("initial score=%d, want 0", m.Evaluation().Score)
	}

	m, _ = press(t, m, runes("2"), tea.KeyMsg{Type: tea.KeySpace}, tea.KeyMsg{Type: tea.KeyEnter})
	ev := m.Evaluation()
	if ev.Totals.Study != 2 || ev.Trend[1] != 16 {
		t.Fatalf("study=%d trend[1]=%d, want 2/16", ev.Totals.Study, ev.Trend[1])
	}
	if m.Cursor() != 2 {
		t.Fatalf("cursor=%d, want 2", m.Cursor())
	}
}

func TestCursorMovesAndClamps(t *testing.T) {
	m := newTestModel(&memStore{})

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyUp})
	if m.Cursor() != 0 {
		t.Fatalf("cursor=%d, want 0", m.Cursor())
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, runes("l"))
	if m.Cursor() != gridColumns+1 {
		t.Fatalf("cursor=%d, want %d", m.Cursor(), gridColumns+1)
	}
	for i := 0; i < 10; i++ {
		m, _ = press(t, m, runes("j"))
	}
	if m.Cursor() != schema.HoursPerDay-1 {
		t.Fatalf("cursor=%d, want 23", m.Cursor())
	}
}

func TestResetRestoresAllRest(t *testing.T) {
	m := newTestModel(&memStore{})
	m, _ = press(t, m, runes("3"), tea.KeyMsg{Type: tea.KeySpace}, runes("r"))
	if m.Evaluation().Totals.Rest != 24 || m.Cursor() != 0 {
		t.Fatalf("totals=%+v cursor=%d", m.Evaluation().Totals, m.Cursor())
	}
}

func TestSaveAppendsRecordAndReloadsHistory(t *testing.T) {
	store := &memStore{}
	m := newTestModel(store)
	m, _ = press(t, m, runes("2"), tea.KeyMsg{Type: tea.KeySpace})

	m, cmd := press(t, m, runes("s"))
	if cmd == nil {
		t.Fatalf("expected save command")
	}
	// 保存进行中再次按 s 不重复保存
	if _, again := press(t, m, runes("s")); again != nil {
		t.Fatalf("expected no second save while saving")
	}

	msg := cmd()
	saved, ok := msg.(savedMsg)
	if !ok {
		t.Fatalf("msg=%T, want savedMsg", msg)
	}
	if saved.err != nil {
		t.Fatalf("save error: %v", saved.err)
	}

	m, reload := press(t, m, saved)
	if len(store.records) != 1 || store.records[0].Study != 1 {
		t.Fatalf("records=%+v", store.records)
	}
	if !strings.Contains(m.notice, "已保存") {
		t.Fatalf("notice=%q", m.notice)
	}
	if reload == nil {
		t.Fatalf("expected history reload")
	}
	m, _ = press(t, m, reload())
	if len(m.recent) != 1 {
		t.Fatalf("recent=%d, want 1", len(m.recent))
	}
	if !strings.Contains(m.View(), "最近记录") {
		t.Fatalf("view missing history panel")
	}
}

func TestSaveErrorIsShown(t *testing.T) {
	m := newTestModel(&memStore{appendErr: errors.New("disk full")})
	m, cmd := press(t, m, runes("s"))
	m, _ = press(t, m, cmd())
	if m.err == nil || !strings.Contains(m.View(), "disk full") {
		t.Fatalf("err=%v", m.err)
	}
	if m.saving {
		t.Fatalf("saving flag not cleared")
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(&memStore{})
	_, cmd := press(t, m, runes("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestViewShowsAdvice(t *testing.T) {
	m := newTestModel(&memStore{})
	view := m.View()
	if m.Evaluation().Advice.Rule != service.RuleUnderStimulation || !strings.Contains(view, "UNDER-STIMULATION") {
		t.Fatalf("view missing advice text")
	}
	if !strings.Contains(view, "StressSense") {
		t.Fatalf("view missing title")
	}
}

func TestSparkline(t *testing.T) {
	if got := sparkline([]int{0, 50, 100, 150, -3}); got != "▁▄██▁" {
		t.Fatalf("sparkline=%q", got)
	}
}
