package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/yuqie6/stresssense/internal/schema"
)

// CSVHeader 文件列顺序，与已有数据文件保持兼容
var CSVHeader = []string{"date", "rest", "study", "game", "other", "stress", "status", "summary"}

// CSVStore 单个 CSV 文件的历史存储
// 追加时读出全部记录再整体重写：无原子替换、无锁，只适用于单进程单写者
// 已有行按原文写回；摘要中的 \r\n 与 \r 统一写为 \n
type CSVStore struct {
	path string
}

// csvTable 文件原文：表头与各行单元格
type csvTable struct {
	header []string
	rows   [][]string
}

// NewCSVStore 创建 CSV 存储，不触碰文件
func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// Path 文件路径
func (s *CSVStore) Path() string {
	return s.path
}

// EnsureFile 文件不存在时创建只含表头的空文件
func (s *CSVStore) EnsureFile() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("检查数据文件失败: %w", err)
	}
	return s.writeTable(csvTable{header: append([]string(nil), CSVHeader...)})
}

// Append 追加一条记录
// 旧文件缺少的列补在表头末尾，已有单元格不改写；任何一行无法解析则拒绝写入
func (s *CSVStore) Append(ctx context.Context, record schema.DailyRecord) error {
	table, _, err := s.read(ctx)
	if err != nil {
		return err
	}
	if table.header == nil {
		table.header = append([]string(nil), CSVHeader...)
	}
	table.header = withCanonicalColumns(table.header)

	width := len(table.header)
	for i, row := range table.rows {
		if len(row) < width {
			table.rows[i] = append(row, make([]string, width-len(row))...)
		}
	}
	table.rows = append(table.rows, formatCSVRow(columnIndex(table.header), width, record))
	return s.writeTable(table)
}

// ReadAll 按文件顺序读取全部记录，文件不存在返回空列表
func (s *CSVStore) ReadAll(ctx context.Context) (schema.HistoryLog, error) {
	_, records, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// read 读取原文并逐行解析；文件不存在或为空时表头为 nil
func (s *CSVStore) read(ctx context.Context) (csvTable, schema.HistoryLog, error) {
	var table csvTable
	records := schema.HistoryLog{}

	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return table, records, nil
	}
	if err != nil {
		return table, nil, fmt.Errorf("打开数据文件失败: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return table, records, nil
	}
	if err != nil {
		return table, nil, fmt.Errorf("读取表头失败: %w", err)
	}
	cols := columnIndex(header)
	if _, ok := cols["date"]; !ok {
		return table, nil, fmt.Errorf("数据文件缺少 date 列: %v", header)
	}
	table.header = header

	line := 1
	for {
		if err := ctx.Err(); err != nil {
			return table, nil, err
		}
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return table, nil, fmt.Errorf("读取第 %d 行失败: %w", line, err)
		}
		rec, err := parseCSVRow(cols, row)
		if err != nil {
			return table, nil, fmt.Errorf("解析第 %d 行失败: %w", line, err)
		}
		table.rows = append(table.rows, row)
		records = append(records, rec)
	}
	return table, records, nil
}

func (s *CSVStore) writeTable(table csvTable) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("创建数据目录失败: %w", err)
	}
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("创建数据文件失败: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(table.header); err != nil {
		f.Close()
		return fmt.Errorf("写入表头失败: %w", err)
	}
	for _, row := range table.rows {
		if err := w.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("写入记录失败: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("写入数据文件失败: %w", err)
	}
	return f.Close()
}

// columnIndex 列名（忽略大小写）到下标
func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		cols[name] = i
	}
	return cols
}

// withCanonicalColumns 补齐缺失的标准列
func withCanonicalColumns(header []string) []string {
	cols := columnIndex(header)
	for _, name := range CSVHeader {
		if _, ok := cols[name]; !ok {
			header = append(header, name)
		}
	}
	return header
}

func parseCSVRow(cols map[string]int, row []string) (schema.DailyRecord, error) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var rec schema.DailyRecord
	rec.Date = field("date")
	rec.Status = schema.Status(field("status"))
	rec.Summary = field("summary")

	ints := []struct {
		name string
		dst  *int
	}{
		{"rest", &rec.Rest},
		{"study", &rec.Study},
		{"game", &rec.Game},
		{"other", &rec.Other},
		{"stress", &rec.Stress},
	}
	for _, it := range ints {
		v, err := parseCount(field(it.name))
		if err != nil {
			return rec, fmt.Errorf("%s: %w", it.name, err)
		}
		*it.dst = v
	}
	return rec, nil
}

// parseCount 整数列，兼容 "8.0" 这种整值浮点写法，空值为 0；带小数的值报错
func parseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%q 不是整数", s)
	}
	return int(f), nil
}

// formatCSVRow 按表头位置写出一条记录，未知列留空
func formatCSVRow(cols map[string]int, width int, rec schema.DailyRecord) []string {
	row := make([]string, width)
	values := map[string]string{
		"date":    rec.Date,
		"rest":    strconv.Itoa(rec.Rest),
		"study":   strconv.Itoa(rec.Study),
		"game":    strconv.Itoa(rec.Game),
		"other":   strconv.Itoa(rec.Other),
		"stress":  strconv.Itoa(rec.Stress),
		"status":  string(rec.Status),
		"summary": normalizeNewlines(rec.Summary),
	}
	for name, v := range values {
		row[cols[name]] = v
	}
	return row
}

// normalizeNewlines encoding/csv 读回时会把字段内的 \r\n 变成 \n
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
