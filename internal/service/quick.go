package service

import (
	"math"
	"strings"

	"github.com/yuqie6/stresssense/internal/schema"
)

// QuickResult 快速模式结果（总时长公式）
type QuickResult struct {
	Hours           HourTotals         `json:"hours"`
	Score           float64            `json:"score"`
	Level           schema.StressLevel `json:"level"`
	Recommendations []string           `json:"recommendations"`
}

// QuickAnalyze 按总时长打分并给出等级建议
func QuickAnalyze(h HourTotals) QuickResult {
	score := ScoreTotals(h)
	level := schema.LevelFor(score)
	return QuickResult{
		Hours:           h,
		Score:           score,
		Level:           level,
		Recommendations: Recommend(level),
	}
}

// levelStatus 快速模式等级映射到状态标签
var levelStatus = map[schema.StressLevel]schema.Status{
	schema.LevelLow:      schema.StatusHealthy,
	schema.LevelModerate: schema.StatusCaution,
	schema.LevelHigh:     schema.StatusWarning,
}

// Record 转为日汇总，小时数与分数四舍五入为整数
func (r QuickResult) Record(date string) schema.DailyRecord {
	return schema.DailyRecord{
		Date:    date,
		Rest:    roundHours(r.Hours.Rest),
		Study:   roundHours(r.Hours.Study),
		Game:    roundHours(r.Hours.Game),
		Other:   roundHours(r.Hours.Other),
		Stress:  int(math.Round(r.Score)),
		Status:  levelStatus[r.Level],
		Summary: string(r.Level) + "\n- " + strings.Join(r.Recommendations, "\n- "),
	}
}

func roundHours(v float64) int {
	return int(math.Round(v))
}
