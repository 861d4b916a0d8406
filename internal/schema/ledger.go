package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// HoursPerDay 一天的小时数
const HoursPerDay = 24

// ErrInvalidHour 小时下标越界或格式错误
var ErrInvalidHour = errors.New("无效的小时")

// DayLedger 当天 24 小时的活动记录，下标即小时 (0-23)
// 只属于一个会话，不直接持久化
type DayLedger [HoursPerDay]HourSlot

// NewDayLedger 创建全部为 rest 的记录
func NewDayLedger() DayLedger {
	var l DayLedger
	for i := range l {
		l[i] = SlotRest
	}
	return l
}

// Set 修改单个小时的活动
func (l *DayLedger) Set(hour int, slot HourSlot) error {
	if hour < 0 || hour >= HoursPerDay {
		return fmt.Errorf("%w: %d", ErrInvalidHour, hour)
	}
	if !slot.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSlot, slot)
	}
	l[hour] = slot
	return nil
}

// Totals 按类型统计小时数
func (l DayLedger) Totals() CategoryTotals {
	var c CategoryTotals
	for _, slot := range l {
		switch slot {
		case SlotStudy:
			c.Study++
		case SlotGame:
			c.Game++
		case SlotOther:
			c.Other++
		default:
			c.Rest++
		}
	}
	return c
}

// CategoryTotals 各类型小时数，由 DayLedger 推导
type CategoryTotals struct {
	Rest  int `json:"rest"`
	Study int `json:"study"`
	Game  int `json:"game"`
	Other int `json:"other"`
}

// Total 小时总数（来自 DayLedger 时恒为 24）
func (c CategoryTotals) Total() int {
	return c.Rest + c.Study + c.Game + c.Other
}

// Get 按类型取值
func (c CategoryTotals) Get(slot HourSlot) int {
	switch slot {
	case SlotRest:
		return c.Rest
	case SlotStudy:
		return c.Study
	case SlotGame:
		return c.Game
	case SlotOther:
		return c.Other
	}
	return 0
}

// StressTrend 每小时结束时的压力值，与 DayLedger 下标对齐
type StressTrend [HoursPerDay]int

// Peak 最高值
func (t StressTrend) Peak() int {
	peak := t[0]
	for _, v := range t[1:] {
		if v > peak {
			peak = v
		}
	}
	return peak
}

// ParseLedgerSpec 解析 "0-7:rest,8-19:study,20:game" 形式的描述
// 未提及的小时保持 rest，后出现的区间覆盖前面的
func ParseLedgerSpec(spec string) (DayLedger, error) {
	ledger := NewDayLedger()
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return ledger, nil
	}

	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		rangePart, slotPart, ok := strings.Cut(part, ":")
		if !ok {
			return ledger, fmt.Errorf("%w: 缺少活动类型 %q", ErrInvalidHour, part)
		}
		slot, err := ParseHourSlot(slotPart)
		if err != nil {
			return ledger, err
		}
		from, to, err := parseHourRange(rangePart)
		if err != nil {
			return ledger, err
		}
		for h := from; h <= to; h++ {
			ledger[h] = slot
		}
	}
	return ledger, nil
}

func parseHourRange(s string) (int, int, error) {
	fromStr, toStr, isRange := strings.Cut(strings.TrimSpace(s), "-")
	from, err := parseHour(fromStr)
	if err != nil {
		return 0, 0, err
	}
	if !isRange {
		return from, from, nil
	}
	to, err := parseHour(toStr)
	if err != nil {
		return 0, 0, err
	}
	if to < from {
		return 0, 0, fmt.Errorf("%w: 区间 %q 起点大于终点", ErrInvalidHour, s)
	}
	return from, to, nil
}

func parseHour(s string) (int, error) {
	h, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || h < 0 || h >= HoursPerDay {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHour, s)
	}
	return h, nil
}
