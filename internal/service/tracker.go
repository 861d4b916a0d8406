package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/yuqie6/stresssense/internal/schema"
)

// Evaluation 一次完整计算的结果，供展示层读取
type Evaluation struct {
	Ledger  schema.DayLedger      `json:"ledger"`
	Totals  schema.CategoryTotals `json:"totals"`
	Score   int                   `json:"score"`
	Trend   schema.StressTrend    `json:"trend"`
	Advice  Advice                `json:"advice"`
	Signals Signals               `json:"signals"`
}

// Evaluate 对给定的小时记录计算分数、走势和建议
func Evaluate(f Formula, ledger schema.DayLedger) Evaluation {
	totals := ledger.Totals()
	score, trend := ComputeTrendWith(f, ledger)
	sig := DeriveSignals(totals, trend, ledger)
	return Evaluation{
		Ledger:  ledger,
		Totals:  totals,
		Score:   score,
		Trend:   trend,
		Advice:  adviseSignals(totals, score, sig),
		Signals: sig,
	}
}

// NewDailyRecord 由计算结果构建日汇总
func NewDailyRecord(date string, ev Evaluation) schema.DailyRecord {
	return schema.DailyRecord{
		Date:    date,
		Rest:    ev.Totals.Rest,
		Study:   ev.Totals.Study,
		Game:    ev.Totals.Game,
		Other:   ev.Totals.Other,
		Stress:  ev.Score,
		Status:  ev.Advice.Status,
		Summary: ev.Advice.Text,
	}
}

// DayTracker 单个会话持有的当天记录
// 非并发安全：一个会话只应被一个调用方使用
type DayTracker struct {
	ledger  schema.DayLedger
	formula Formula
	store   HistoryStore
	now     func() time.Time
}

// NewDayTracker 创建会话，初始为全天 rest
func NewDayTracker(store HistoryStore, formula Formula) *DayTracker {
	if formula == "" {
		formula = FormulaHourly
	}
	return &DayTracker{
		ledger:  schema.NewDayLedger(),
		formula: formula,
		store:   store,
		now:     time.Now,
	}
}

// SetHour 修改一个小时的活动
func (t *DayTracker) SetHour(hour int, slot schema.HourSlot) error {
	return t.ledger.Set(hour, slot)
}

// Load 用给定记录替换当前记录
func (t *DayTracker) Load(ledger schema.DayLedger) {
	t.ledger = ledger
}

// Reset 恢复为全天 rest
func (t *DayTracker) Reset() {
	t.ledger = schema.NewDayLedger()
}

// Ledger 当前记录的副本
func (t *DayTracker) Ledger() schema.DayLedger {
	return t.ledger
}

// Snapshot 当前状态的独立副本，可交给其他 goroutine 保存
func (t *DayTracker) Snapshot() *DayTracker {
	c := *t
	return &c
}

// Formula 当前使用的公式
func (t *DayTracker) Formula() Formula {
	return t.formula
}

// Evaluate 计算当前记录
func (t *DayTracker) Evaluate() Evaluation {
	return Evaluate(t.formula, t.ledger)
}

// SaveDay 生成日汇总并追加到存储，date 为空时使用今天
func (t *DayTracker) SaveDay(ctx context.Context, date string) (schema.DailyRecord, error) {
	if t.store == nil {
		return schema.DailyRecord{}, fmt.Errorf("未配置历史存储")
	}
	if date == "" {
		date = t.now().Format(schema.DateLayout)
	} else if _, err := time.Parse(schema.DateLayout, date); err != nil {
		return schema.DailyRecord{}, fmt.Errorf("日期格式应为 YYYY-MM-DD: %w", err)
	}

	record := NewDailyRecord(date, t.Evaluate())
	if err := t.store.Append(ctx, record); err != nil {
		return schema.DailyRecord{}, fmt.Errorf("保存日汇总失败: %w", err)
	}
	slog.Info("已保存日汇总", "date", record.Date, "stress", record.Stress, "status", record.Status)
	return record, nil
}
