package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yuqie6/stresssense/internal/schema"
	"github.com/yuqie6/stresssense/internal/service"
)

// gridColumns 小时网格每行的格数
const gridColumns = 6

// recentHistory 面板中显示最近几条历史
const recentHistory = 5

type savedMsg struct {
	record schema.DailyRecord
	err    error
}

type historyMsg struct {
	log schema.HistoryLog
}

// Model 交互式看板：编辑当天 24 小时并实时查看分数与建议
type Model struct {
	tracker *service.DayTracker
	history *service.HistoryService

	cursor int
	brush  schema.HourSlot
	eval   service.Evaluation
	recent schema.HistoryLog

	notice string
	err    error
	saving bool

	keys  keyMap
	help  help.Model
	width int
}

// New 创建看板，history 为空时不显示历史面板
func New(tracker *service.DayTracker, history *service.HistoryService) Model {
	m := Model{
		tracker: tracker,
		history: history,
		brush:   schema.SlotStudy,
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
	m.eval = tracker.Evaluate()
	return m
}

func (m Model) Init() tea.Cmd {
	return m.loadHistory()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case savedMsg:
		m.saving = false
		if msg.err != nil {
			m.err = msg.err
			m.notice = ""
			return m, nil
		}
		m.err = nil
		m.notice = fmt.Sprintf("✅ 已保存 %s：压力 %d（%s）", msg.record.Date, msg.record.Stress, msg.record.Status)
		return m, m.loadHistory()

	case historyMsg:
		m.recent = msg.log
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-gridColumns)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(gridColumns)
	case key.Matches(msg, m.keys.Rest):
		m.brush = schema.SlotRest
	case key.Matches(msg, m.keys.Study):
		m.brush = schema.SlotStudy
	case key.Matches(msg, m.keys.Game):
		m.brush = schema.SlotGame
	case key.Matches(msg, m.keys.Other):
		m.brush = schema.SlotOther
	case key.Matches(msg, m.keys.Paint):
		if err := m.tracker.SetHour(m.cursor, m.brush); err != nil {
			m.err = err
			return m, nil
		}
		m.refresh()
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Reset):
		m.tracker.Reset()
		m.cursor = 0
		m.notice = "已重置为全天休息"
		m.refresh()
	case key.Matches(msg, m.keys.Save):
		if m.saving {
			return m, nil
		}
		m.saving = true
		return m, saveCmd(m.tracker.Snapshot())
	}
	return m, nil
}

func (m *Model) moveCursor(delta int) {
	m.cursor = min(max(m.cursor+delta, 0), schema.HoursPerDay-1)
}

func (m *Model) refresh() {
	m.eval = m.tracker.Evaluate()
	m.err = nil
}

// saveCmd 在副本上保存，不与后续编辑共享状态
func saveCmd(snapshot *service.DayTracker) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		rec, err := snapshot.SaveDay(ctx, "")
		return savedMsg{record: rec, err: err}
	}
}

func (m Model) loadHistory() tea.Cmd {
	if m.history == nil {
		return nil
	}
	hs := m.history
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return historyMsg{log: hs.History(ctx)}
	}
}

// Evaluation 当前计算结果
func (m Model) Evaluation() service.Evaluation {
	return m.eval
}

// Cursor 当前选中的小时
func (m Model) Cursor() int {
	return m.cursor
}

// Run 在备用屏幕中运行看板直到退出
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
