package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Storage StorageConfig `mapstructure:"storage"`
	Scoring ScoringConfig `mapstructure:"scoring"`
	Server  ServerConfig  `mapstructure:"server"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name     string `mapstructure:"name"`
	LogLevel string `mapstructure:"log_level"`
	LogPath  string `mapstructure:"log_path"`
}

// StorageConfig 存储配置
type StorageConfig struct {
	Backend string `mapstructure:"backend"` // csv | json | sqlite
	Path    string `mapstructure:"path"`
}

// ScoringConfig 计分配置
type ScoringConfig struct {
	Formula string `mapstructure:"formula"` // hourly | totals
}

// ServerConfig Web 接口配置
type ServerConfig struct {
	Addr           string   `mapstructure:"addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load 加载配置文件
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// 支持环境变量，例如 STRESS_STORAGE_BACKEND
	v.SetEnvPrefix("STRESS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Debug("配置文件未找到，使用默认配置")
		} else {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	} else {
		slog.Debug("加载配置文件", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	// storage.path 为空时由存储层按后端选择默认文件
	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	cfg.Storage.Path = expandEnv(cfg.Storage.Path)
	cfg.App.LogPath = expandEnv(cfg.App.LogPath)

	return &cfg, nil
}

// Default 不读取任何文件的默认配置
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// setDefaults 设置默认值
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "stresssense")
	v.SetDefault("app.log_level", "warn")
	v.SetDefault("app.log_path", "")

	v.SetDefault("storage.backend", "csv")
	v.SetDefault("storage.path", "")

	v.SetDefault("scoring.formula", "hourly")

	v.SetDefault("server.addr", "127.0.0.1:5000")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5000", "http://127.0.0.1:5000"})
}

// expandEnv 展开环境变量占位符 ${VAR}
func expandEnv(s string) string {
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		return os.Getenv(s[2 : len(s)-1])
	}
	return s
}
