package schema

import "time"

// Status 建议引擎给出的状态标签
type Status string

const (
	StatusDanger   Status = "Danger"
	StatusWarning  Status = "Warning"
	StatusUrgent   Status = "Urgent"
	StatusBalanced Status = "Balanced"
	StatusCaution  Status = "Caution"
	StatusHealthy  Status = "Healthy"
)

// DateLayout 记录日期格式
const DateLayout = "2006-01-02"

// DailyRecord 每次保存生成的一条日汇总，追加后不再修改
type DailyRecord struct {
	Date    string `json:"date"` // YYYY-MM-DD，不要求唯一
	Rest    int    `json:"rest"`
	Study   int    `json:"study"`
	Game    int    `json:"game"`
	Other   int    `json:"other"`
	Stress  int    `json:"stress"`
	Status  Status `json:"status"`
	Summary string `json:"summary"`
}

// Totals 记录中的分类小时数
func (r DailyRecord) Totals() CategoryTotals {
	return CategoryTotals{Rest: r.Rest, Study: r.Study, Game: r.Game, Other: r.Other}
}

// HistoryLog 按追加顺序排列的历史记录
type HistoryLog []DailyRecord

// DailyRecordRow SQLite 中的日汇总行
type DailyRecordRow struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Date      string    `gorm:"size:10"`
	Rest      int       `gorm:"default:0"`
	Study     int       `gorm:"default:0"`
	Game      int       `gorm:"default:0"`
	Other     int       `gorm:"default:0"`
	Stress    int       `gorm:"default:0"`
	Status    string    `gorm:"size:20"`
	Summary   string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (DailyRecordRow) TableName() string {
	return "daily_records"
}

// NewDailyRecordRow 由记录构建数据库行
func NewDailyRecordRow(r DailyRecord) *DailyRecordRow {
	return &DailyRecordRow{
		Date:    r.Date,
		Rest:    r.Rest,
		Study:   r.Study,
		Game:    r.Game,
		Other:   r.Other,
		Stress:  r.Stress,
		Status:  string(r.Status),
		Summary: r.Summary,
	}
}

// Record 转回领域记录
func (row DailyRecordRow) Record() DailyRecord {
	return DailyRecord{
		Date:    row.Date,
		Rest:    row.Rest,
		Study:   row.Study,
		Game:    row.Game,
		Other:   row.Other,
		Stress:  row.Stress,
		Status:  Status(row.Status),
		Summary: row.Summary,
	}
}
