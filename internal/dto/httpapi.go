package dto

// 注意：本包用于承载“对外契约”的 DTO（与 HTTP API 保持稳定）。
// 不要在这里放 GORM/持久化细节；内部 schema 请见 internal/schema；计算逻辑收敛在 internal/service。

// LedgerRequestDTO 24 个小时的活动名称，下标即小时
type LedgerRequestDTO struct {
	Hours []string `json:"hours" validate:"len=24,dive,required"`
	Date  string   `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type AdviceDTO struct {
	Text   string `json:"text"`
	Status string `json:"status"`
	Rule   string `json:"rule"`
}

type TotalsDTO struct {
	Rest  int `json:"rest"`
	Study int `json:"study"`
	Game  int `json:"game"`
	Other int `json:"other"`
}

type EvaluationDTO struct {
	Formula     string    `json:"formula"`
	Hours       []string  `json:"hours"`
	Totals      TotalsDTO `json:"totals"`
	Score       int       `json:"score"`
	Trend       []int     `json:"trend"`
	Peak        int       `json:"peak"`
	EveningAvg  float64   `json:"evening_avg"`
	StudyStreak int       `json:"study_streak"`
	Advice      AdviceDTO `json:"advice"`
}

type DailyRecordDTO struct {
	Date    string `json:"date"`
	Rest    int    `json:"rest"`
	Study   int    `json:"study"`
	Game    int    `json:"game"`
	Other   int    `json:"other"`
	Stress  int    `json:"stress"`
	Status  string `json:"status"`
	Summary string `json:"summary"`
}

type SaveResponseDTO struct {
	Record     DailyRecordDTO `json:"record"`
	Evaluation EvaluationDTO  `json:"evaluation"`
}

type SeriesPointDTO struct {
	Date   string `json:"date"`
	Stress int    `json:"stress"`
}

// HistoryQueryDTO GET /api/history 的查询参数
type HistoryQueryDTO struct {
	Date string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type HistoryResponseDTO struct {
	Records []DailyRecordDTO `json:"records"`
	Series  []SeriesPointDTO `json:"series"`
}
