package service

import (
	"fmt"

	"github.com/yuqie6/stresssense/internal/schema"
)

// 规则编号，按优先级排列
const (
	RuleCriticalBurnout  = "critical_burnout"
	RuleFatigueAlert     = "fatigue_alert"
	RuleAcademicOverload = "academic_overload"
	RuleSleepDebt        = "sleep_debt"
	RuleUnderStimulation = "under_stimulation"
	RuleDopamineFatigue  = "dopamine_fatigue"
	RuleLateDayOverload  = "late_day_overload"
	RuleFlowState        = "flow_state"
	RuleStableBalance    = "stable_balance"
)

// eveningStart 傍晚区间起始小时（含），到 23 点结束
const eveningStart = 18

// Advice 建议文本与状态
type Advice struct {
	Text   string        `json:"text"`
	Status schema.Status `json:"status"`
	Rule   string        `json:"rule"`
}

// Signals 规则链使用的派生指标
type Signals struct {
	Total       int     `json:"total"`
	RestRatio   float64 `json:"rest_ratio"`
	StudyRatio  float64 `json:"study_ratio"`
	Peak        int     `json:"peak"`
	EveningAvg  float64 `json:"evening_avg"`
	StudyStreak int     `json:"study_streak"`
}

// DeriveSignals 由分类统计、走势和小时顺序计算派生指标
func DeriveSignals(totals schema.CategoryTotals, trend schema.StressTrend, ledger schema.DayLedger) Signals {
	total := totals.Total()
	denom := float64(max(1, total))

	evening := trend[eveningStart:]
	sum := 0
	for _, v := range evening {
		sum += v
	}

	return Signals{
		Total:       total,
		RestRatio:   float64(totals.Rest) / denom,
		StudyRatio:  float64(totals.Study) / denom,
		Peak:        trend.Peak(),
		EveningAvg:  float64(sum) / float64(len(evening)),
		StudyStreak: StudyStreak(ledger[:]),
	}
}

// StudyStreak 最长连续 study 小时数，不跨天回绕
func StudyStreak(slots []schema.HourSlot) int {
	longest, cur := 0, 0
	for _, slot := range slots {
		if slot == schema.SlotStudy {
			cur++
			longest = max(longest, cur)
		} else {
			cur = 0
		}
	}
	return longest
}

// Advise 按顺序匹配规则，第一条命中即返回
func Advise(totals schema.CategoryTotals, score int, trend schema.StressTrend, ledger schema.DayLedger) Advice {
	return adviseSignals(totals, score, DeriveSignals(totals, trend, ledger))
}

func adviseSignals(c schema.CategoryTotals, score int, sig Signals) Advice {
	switch {
	case score > 85 || sig.Peak > 90:
		return Advice{
			Text:   "🚨 CRITICAL BURNOUT\nStop work immediately. Sleep 8+ hrs.\nTomorrow risk: VERY HIGH",
			Status: schema.StatusDanger,
			Rule:   RuleCriticalBurnout,
		}
	case sig.StudyStreak >= 5:
		return Advice{
			Text:   fmt.Sprintf("🧠 FATIGUE ALERT\n%d hrs continuous study.\nInsert long break.\nTomorrow risk: Focus drop", sig.StudyStreak),
			Status: schema.StatusWarning,
			Rule:   RuleFatigueAlert,
		}
	case c.Study > 10:
		return Advice{
			Text:   "📚 ACADEMIC OVERLOAD\nReduce study by 1–2 hrs.\nUse active recall.",
			Status: schema.StatusWarning,
			Rule:   RuleAcademicOverload,
		}
	case c.Rest < 6:
		return Advice{
			Text:   "😴 SLEEP DEBT\nRecovery insufficient.\nStress will compound tomorrow.",
			Status: schema.StatusUrgent,
			Rule:   RuleSleepDebt,
		}
	case sig.RestRatio > 0.6 && c.Study < 3:
		return Advice{
			Text:   "🧘 UNDER-STIMULATION\nToo much rest.\nConvert rest → study.",
			Status: schema.StatusBalanced,
			Rule:   RuleUnderStimulation,
		}
	case c.Game > 6:
		return Advice{
			Text:   "🎮 DOPAMINE FATIGUE\nGaming too high.\nReduce by 1–2 hrs.",
			Status: schema.StatusCaution,
			Rule:   RuleDopamineFatigue,
		}
	case sig.EveningAvg > 60:
		return Advice{
			Text:   "🌙 LATE-DAY OVERLOAD\nStop heavy tasks after 8 PM.",
			Status: schema.StatusCaution,
			Rule:   RuleLateDayOverload,
		}
	case score < 30 && sig.StudyRatio > 0.2:
		return Advice{
			Text:   "✨ FLOW STATE\nLow stress + productivity.\nProtect this rhythm.",
			Status: schema.StatusHealthy,
			Rule:   RuleFlowState,
		}
	default:
		return Advice{
			Text:   "✅ STABLE BALANCE\nRoutine is sustainable.",
			Status: schema.StatusHealthy,
			Rule:   RuleStableBalance,
		}
	}
}

// Recommend 快速模式按等级给出的建议
func Recommend(level schema.StressLevel) []string {
	switch level {
	case schema.LevelHigh:
		return []string{
			"Reduce study load slightly",
			"Increase sleep/rest by 1–2 hours",
			"Light walk or music recommended",
		}
	case schema.LevelModerate:
		return []string{
			"Maintain balance",
			"Avoid long gaming sessions",
			"Short breaks during study",
		}
	default:
		return []string{
			"You're doing great!",
			"Maintain this routine",
		}
	}
}
