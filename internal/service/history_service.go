package service

import (
	"context"
	"log/slog"

	"github.com/yuqie6/stresssense/internal/schema"
)

// summaryPreviewRunes 历史列表中摘要预览的长度
const summaryPreviewRunes = 40

// HistoryService 历史读取服务
type HistoryService struct {
	store HistoryStore
}

// NewHistoryService 创建历史服务
func NewHistoryService(store HistoryStore) *HistoryService {
	return &HistoryService{store: store}
}

// SeriesPoint 历史折线上的一个点
type SeriesPoint struct {
	Date   string `json:"date"`
	Stress int    `json:"stress"`
}

// SummaryPreview 历史表格中的一行
type SummaryPreview struct {
	schema.DailyRecord
	Preview string `json:"preview"`
}

// History 读取全部历史；读取失败记录警告并返回空列表
func (s *HistoryService) History(ctx context.Context) schema.HistoryLog {
	if s == nil || s.store == nil {
		return schema.HistoryLog{}
	}
	log, err := s.store.ReadAll(ctx)
	if err != nil {
		slog.Warn("读取历史失败，按空历史处理", "error", err)
		return schema.HistoryLog{}
	}
	if log == nil {
		return schema.HistoryLog{}
	}
	return log
}

// StressSeries 按记录顺序返回日期与分数
func (s *HistoryService) StressSeries(ctx context.Context) []SeriesPoint {
	log := s.History(ctx)
	out := make([]SeriesPoint, 0, len(log))
	for _, r := range log {
		out = append(out, SeriesPoint{Date: r.Date, Stress: r.Stress})
	}
	return out
}

// OnDate 某一天的全部记录；存储支持按日期查询时直接走索引
func (s *HistoryService) OnDate(ctx context.Context, date string) schema.HistoryLog {
	if s == nil || s.store == nil {
		return schema.HistoryLog{}
	}
	if lookup, ok := s.store.(DateLookup); ok {
		log, err := lookup.GetByDate(ctx, date)
		if err != nil {
			slog.Warn("按日期读取历史失败，按空历史处理", "date", date, "error", err)
			return schema.HistoryLog{}
		}
		if log == nil {
			return schema.HistoryLog{}
		}
		return log
	}

	out := schema.HistoryLog{}
	for _, r := range s.History(ctx) {
		if r.Date == date {
			out = append(out, r)
		}
	}
	return out
}

// Previews 历史记录及单行摘要预览
func (s *HistoryService) Previews(ctx context.Context) []SummaryPreview {
	return previews(s.History(ctx))
}

// PreviewsOn 某一天的记录预览
func (s *HistoryService) PreviewsOn(ctx context.Context, date string) []SummaryPreview {
	return previews(s.OnDate(ctx, date))
}

func previews(log schema.HistoryLog) []SummaryPreview {
	out := make([]SummaryPreview, 0, len(log))
	for _, r := range log {
		out = append(out, SummaryPreview{DailyRecord: r, Preview: previewText(r.Summary)})
	}
	return out
}
