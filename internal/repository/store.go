package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/yuqie6/stresssense/internal/schema"
)

// 存储后端
const (
	BackendCSV    = "csv"
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// HistoryStore 可关闭的历史存储
type HistoryStore interface {
	Append(ctx context.Context, record schema.DailyRecord) error
	ReadAll(ctx context.Context) (schema.HistoryLog, error)
	Path() string
	Close() error
}

// StoreOptions 存储选项
type StoreOptions struct {
	Backend string
	Path    string
}

// DefaultPath 各后端的默认文件
func DefaultPath(backend string) string {
	switch strings.ToLower(backend) {
	case BackendJSON:
		return "./data/stress_data.json"
	case BackendSQLite:
		return "./data/stress.db"
	default:
		return "./data/stress_data.csv"
	}
}

// Open 按后端打开存储；CSV 文件不存在时写入表头
func Open(opts StoreOptions) (HistoryStore, error) {
	backend := strings.ToLower(strings.TrimSpace(opts.Backend))
	if backend == "" {
		backend = BackendCSV
	}
	path := opts.Path
	if path == "" {
		path = DefaultPath(backend)
	}

	switch backend {
	case BackendCSV:
		s := NewCSVStore(path)
		if err := s.EnsureFile(); err != nil {
			return nil, err
		}
		return fileStore{s}, nil
	case BackendJSON:
		return fileStore{NewJSONStore(path)}, nil
	case BackendSQLite:
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("未知的存储后端: %q", opts.Backend)
	}
}

// fileStore 为文件存储补上空的 Close
type fileStore struct {
	fileBacked
}

type fileBacked interface {
	Append(ctx context.Context, record schema.DailyRecord) error
	ReadAll(ctx context.Context) (schema.HistoryLog, error)
	Path() string
}

func (fileStore) Close() error { return nil }
