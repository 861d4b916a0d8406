package schema

import (
	"errors"
	"fmt"
	"strings"
)

// HourSlot 一个小时的活动类型
type HourSlot string

const (
	SlotRest  HourSlot = "rest"  // 休息 / 睡眠
	SlotStudy HourSlot = "study" // 学习 / 工作
	SlotGame  HourSlot = "game"  // 游戏
	SlotOther HourSlot = "other" // 其他
)

// AllSlots 固定顺序的全部活动类型
var AllSlots = []HourSlot{SlotRest, SlotStudy, SlotGame, SlotOther}

// ErrInvalidSlot 无法识别的活动类型
var ErrInvalidSlot = errors.New("无效的活动类型")

var slotAliases = map[string]HourSlot{
	"rest":   SlotRest,
	"sleep":  SlotRest,
	"study":  SlotStudy,
	"work":   SlotStudy,
	"game":   SlotGame,
	"gaming": SlotGame,
	"other":  SlotOther,
}

// ParseHourSlot 解析活动类型（忽略大小写，支持别名）
func ParseHourSlot(s string) (HourSlot, error) {
	slot, ok := slotAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidSlot, s)
	}
	return slot, nil
}

// Valid 是否为四种已知类型之一
func (h HourSlot) Valid() bool {
	switch h {
	case SlotRest, SlotStudy, SlotGame, SlotOther:
		return true
	}
	return false
}

// Label 展示用名称
func (h HourSlot) Label() string {
	switch h {
	case SlotRest:
		return "Rest / Sleep"
	case SlotStudy:
		return "Study / Work"
	case SlotGame:
		return "Gaming"
	case SlotOther:
		return "Other"
	default:
		return string(h)
	}
}
