package service

import (
	"context"

	"github.com/yuqie6/stresssense/internal/schema"
)

// HistoryStore 历史记录存储：只追加，整体读取
// 实现不保证并发写安全，调用方保持单进程单写者
type HistoryStore interface {
	Append(ctx context.Context, record schema.DailyRecord) error
	ReadAll(ctx context.Context) (schema.HistoryLog, error)
}

// DateLookup 可按日期直接查询的存储（SQLite）
type DateLookup interface {
	GetByDate(ctx context.Context, date string) (schema.HistoryLog, error)
}
