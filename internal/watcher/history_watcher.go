package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce 合并连续写入的等待时间
const DefaultDebounce = 200 * time.Millisecond

// HistoryWatcher 监听历史数据文件的变化
// 监听所在目录而不是文件本身，整体重写或重建文件后仍能收到事件
type HistoryWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	base     string
	debounce time.Duration
	changes  chan struct{}
}

// NewHistoryWatcher 创建监听器
func NewHistoryWatcher(path string, debounce time.Duration) (*HistoryWatcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("获取绝对路径失败: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("创建文件监控器失败: %w", err)
	}
	if err := w.Add(filepath.Dir(absPath)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("添加监控目录失败: %w", err)
	}

	return &HistoryWatcher{
		watcher:  w,
		path:     absPath,
		base:     filepath.Base(absPath),
		debounce: debounce,
		changes:  make(chan struct{}, 1),
	}, nil
}

// Changes 每次（防抖后的）变化发送一次
func (w *HistoryWatcher) Changes() <-chan struct{} {
	return w.changes
}

// Run 阻塞直到 ctx 结束，退出时关闭底层监控器
func (w *HistoryWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()
	slog.Debug("开始监听历史文件", "path", w.path)

	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.matches(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerCh = timer.C

		case <-timerCh:
			timerCh = nil
			select {
			case w.changes <- struct{}{}:
			default:
				// 上一次变化还未被消费
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("文件监控错误", "error", err)
		}
	}
}

// matches 目标文件及 SQLite 的 -wal / -journal 伴随文件
func (w *HistoryWatcher) matches(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Base(event.Name)
	return name == w.base || strings.HasPrefix(name, w.base+"-")
}
