package testutil

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/yuqie6/stresssense/internal/schema"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenTestDB 打开内存 SQLite 并迁移日汇总表
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	// 内存库每个连接独立，固定为单连接
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(
		&schema.SchemaMeta{},
		&schema.DailyRecordRow{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

// SampleRecords 按顺序排列的测试记录
func SampleRecords() schema.HistoryLog {
	return schema.HistoryLog{
		{
			Date: "2026-03-01", Rest: 8, Study: 8, Game: 4, Other: 4, Stress: 32,
			Status: schema.StatusHealthy, Summary: "✅ STABLE BALANCE\nRoutine is sustainable.",
		},
		{
			Date: "2026-03-02", Rest: 4, Study: 12, Game: 5, Other: 3, Stress: 94,
			Status: schema.StatusDanger, Summary: "🚨 CRITICAL BURNOUT\nStop work immediately. Sleep 8+ hrs.\nTomorrow risk: VERY HIGH",
		},
		{
			Date: "2026-03-02", Rest: 6, Study: 11, Game: 7, Other: 0, Stress: 66,
			Status: schema.StatusWarning, Summary: "📚 ACADEMIC OVERLOAD, \"quoted\"\nReduce study by 1–2 hrs.",
		},
	}
}
