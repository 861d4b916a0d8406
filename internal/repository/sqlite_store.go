package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/yuqie6/stresssense/internal/schema"
	"gorm.io/gorm"
)

// ErrSafeMode 数据库处于安全模式，拒绝写入
var ErrSafeMode = errors.New("数据库处于安全模式，无法写入")

// SQLiteStore 基于 SQLite 的历史存储，每条记录一行，按自增 ID 保持追加顺序
type SQLiteStore struct {
	db       *gorm.DB
	database *Database
}

// NewSQLiteStore 打开（或创建）数据库文件
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	database, err := NewDatabase(path)
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{db: database.DB, database: database}, nil
}

// NewSQLiteStoreFromDB 复用已有连接（测试使用）
func NewSQLiteStoreFromDB(db *gorm.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Append 插入一条记录
func (s *SQLiteStore) Append(ctx context.Context, record schema.DailyRecord) error {
	if s.database != nil && s.database.SafeMode {
		return fmt.Errorf("%w: %s", ErrSafeMode, s.database.MigrationError)
	}
	if err := s.db.WithContext(ctx).Create(schema.NewDailyRecordRow(record)).Error; err != nil {
		return fmt.Errorf("写入日汇总失败: %w", err)
	}
	return nil
}

// ReadAll 按插入顺序读取全部记录
func (s *SQLiteStore) ReadAll(ctx context.Context) (schema.HistoryLog, error) {
	var rows []schema.DailyRecordRow
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("查询日汇总失败: %w", err)
	}
	out := make(schema.HistoryLog, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Record())
	}
	return out, nil
}

// GetByDate 某一天的全部记录（同一天可能保存多次）
func (s *SQLiteStore) GetByDate(ctx context.Context, date string) (schema.HistoryLog, error) {
	var rows []schema.DailyRecordRow
	if err := s.db.WithContext(ctx).Where("date = ?", date).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("按日期查询日汇总失败: %w", err)
	}
	out := make(schema.HistoryLog, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Record())
	}
	return out, nil
}

// Path 数据库文件路径
func (s *SQLiteStore) Path() string {
	if s.database == nil {
		return ""
	}
	return s.database.Path
}

// Close 关闭连接
func (s *SQLiteStore) Close() error {
	if s.database == nil {
		return nil
	}
	return s.database.Close()
}
