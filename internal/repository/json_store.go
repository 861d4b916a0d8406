package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yuqie6/stresssense/internal/schema"
)

// JSONStore 单个 JSON 数组文件的历史存储，语义与 CSVStore 相同
// 重写时旧条目按原文保留，包括本程序不认识的字段
type JSONStore struct {
	path string
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Path 文件路径
func (s *JSONStore) Path() string {
	return s.path
}

// Append 读出、追加、整体重写
func (s *JSONStore) Append(ctx context.Context, record schema.DailyRecord) error {
	entries, err := s.readEntries()
	if err != nil {
		return err
	}
	// 无法解析的旧文件不覆盖
	if _, err := decodeEntries(entries); err != nil {
		return err
	}

	entry, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("序列化记录失败: %w", err)
	}
	entries = append(entries, entry)

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("创建数据目录失败: %w", err)
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化历史失败: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("写入数据文件失败: %w", err)
	}
	return nil
}

// ReadAll 文件不存在或为空时返回空列表
func (s *JSONStore) ReadAll(ctx context.Context) (schema.HistoryLog, error) {
	entries, err := s.readEntries()
	if err != nil {
		return nil, err
	}
	return decodeEntries(entries)
}

// readEntries 数组中每个条目的原文
func (s *JSONStore) readEntries() ([]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取数据文件失败: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("解析数据文件失败: %w", err)
	}
	return entries, nil
}

func decodeEntries(entries []json.RawMessage) (schema.HistoryLog, error) {
	out := make(schema.HistoryLog, 0, len(entries))
	for i, entry := range entries {
		var rec schema.DailyRecord
		if err := json.Unmarshal(entry, &rec); err != nil {
			return nil, fmt.Errorf("解析第 %d 条记录失败: %w", i+1, err)
		}
		out = append(out, rec)
	}
	return out, nil
}
