package schema

// StressLevel 快速模式下的压力等级
type StressLevel string

const (
	LevelLow      StressLevel = "Low Stress"
	LevelModerate StressLevel = "Moderate Stress"
	LevelHigh     StressLevel = "High Stress"
)

// LevelFor 按分数划分等级：<30 低，<60 中，其余为高
func LevelFor(score float64) StressLevel {
	switch {
	case score < 30:
		return LevelLow
	case score < 60:
		return LevelModerate
	default:
		return LevelHigh
	}
}
