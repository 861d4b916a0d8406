package bootstrap

import (
	"fmt"
	"io"

	"github.com/yuqie6/stresssense/internal/pkg/config"
	"github.com/yuqie6/stresssense/internal/repository"
	"github.com/yuqie6/stresssense/internal/service"
)

// Core 各入口共享的核心依赖
type Core struct {
	Cfg       *config.Config
	Store     repository.HistoryStore
	Formula   service.Formula
	History   *service.HistoryService
	LogCloser io.Closer
}

// Options 构建参数
type Options struct {
	ConfigPath string
	Component  string
}

// NewCore 加载配置、设置日志并打开历史存储
func NewCore(opts Options) (*Core, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	return NewCoreFromConfig(cfg, opts.Component)
}

// NewCoreFromConfig 使用现成配置构建（测试与 config init 之后复用）
func NewCoreFromConfig(cfg *config.Config, component string) (*Core, error) {
	if cfg == nil {
		return nil, fmt.Errorf("cfg 不能为空")
	}
	logCloser, err := config.SetupLogger(config.LoggerOptions{
		Level:     cfg.App.LogLevel,
		Path:      cfg.App.LogPath,
		Component: component,
	})
	if err != nil {
		return nil, err
	}

	formula, err := service.ParseFormula(cfg.Scoring.Formula)
	if err != nil {
		closeQuietly(logCloser)
		return nil, err
	}

	store, err := repository.Open(repository.StoreOptions{
		Backend: cfg.Storage.Backend,
		Path:    cfg.Storage.Path,
	})
	if err != nil {
		closeQuietly(logCloser)
		return nil, fmt.Errorf("打开历史存储失败: %w", err)
	}

	return &Core{
		Cfg:       cfg,
		Store:     store,
		Formula:   formula,
		History:   service.NewHistoryService(store),
		LogCloser: logCloser,
	}, nil
}

// NewTracker 新会话，每个会话持有独立的当天记录
func (c *Core) NewTracker() *service.DayTracker {
	return service.NewDayTracker(c.Store, c.Formula)
}

// Close 关闭存储与日志文件
func (c *Core) Close() error {
	if c == nil {
		return nil
	}
	var storeErr error
	if c.Store != nil {
		storeErr = c.Store.Close()
	}
	closeQuietly(c.LogCloser)
	return storeErr
}

func closeQuietly(c io.Closer) {
	if c != nil {
		_ = c.Close()
	}
}
