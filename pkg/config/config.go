package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// 运行时配置的来源（优先级从低到高）：
//  1. 默认值 Default()
//  2. YAML 文件：环境变量 SATO2D_CONFIG 指定的路径，未指定时尝试工作目录下的 sato2d.yaml
//  3. 环境变量：前缀 SATO2D_，嵌套键用双下划线分隔，如 SATO2D_RESULTS__BACKEND=sqlite
const (
	EnvPrefix         = "SATO2D_"
	EnvConfigPath     = "SATO2D_CONFIG"
	DefaultConfigFile = "sato2d.yaml"
)

// 结果存储后端
const (
	ResultsBackendCSV    = "csv"
	ResultsBackendSQLite = "sqlite"
)

// Config 运行时配置
type Config struct {
	// LogLevel 日志级别：debug, info, warn, error
	LogLevel string `koanf:"log_level"`
	// Verbose 为 false 时只输出 warn 及以上级别的日志
	Verbose bool `koanf:"verbose"`
	// TPS 每秒逻辑帧数
	TPS int `koanf:"tps"`
	// SessionSeconds 每局倒计时长度
	SessionSeconds int `koanf:"session_seconds"`

	Assets  AssetsConfig  `koanf:"assets"`
	Results ResultsConfig `koanf:"results"`
	Metrics MetricsConfig `koanf:"metrics"`
	Storage StorageConfig `koanf:"storage"`
}

// AssetsConfig 资源配置
type AssetsConfig struct {
	// Manifest 资源清单文件路径（YAML）
	Manifest string `koanf:"manifest"`
}

// ResultsConfig 成绩记录存储配置
type ResultsConfig struct {
	// Backend 存储后端：csv 或 sqlite
	Backend string `koanf:"backend"`
	// Path 存储文件路径（相对于工作目录）
	Path string `koanf:"path"`
}

// MetricsConfig 本地指标导出配置
type MetricsConfig struct {
	// Enabled 是否在每局结束和退出时导出指标
	Enabled bool `koanf:"enabled"`
	// Path Prometheus 文本格式导出文件路径
	Path string `koanf:"path"`
}

// StorageConfig gdata 存储配置
type StorageConfig struct {
	// AppName gdata 应用名，决定设置文件所在目录
	AppName string `koanf:"app_name"`
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		LogLevel:       "info",
		Verbose:        false,
		TPS:            DefaultTPS,
		SessionSeconds: DefaultSessionSeconds,
		Assets: AssetsConfig{
			Manifest: "assets/config/resources.yaml",
		},
		Results: ResultsConfig{
			Backend: ResultsBackendCSV,
			Path:    "data_csv",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Path:    "sato2d.prom",
		},
		Storage: StorageConfig{
			AppName: "sato2d",
		},
	}
}

// Load 按 默认值 -> 文件 -> 环境变量 的顺序加载配置
func Load() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		}
	}
	return LoadFile(path)
}

// LoadFile 从指定 YAML 文件加载配置，path 为空时跳过文件层
func LoadFile(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
		}
	}

	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		s = strings.ToLower(s)
		return strings.ReplaceAll(s, "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrLoadConfig, err)
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 校验配置取值
func (c *Config) Validate() error {
	var errs []error
	if c.TPS <= 0 {
		errs = append(errs, fmt.Errorf("tps must be positive, got %d", c.TPS))
	}
	if c.SessionSeconds <= 0 {
		errs = append(errs, fmt.Errorf("session_seconds must be positive, got %d", c.SessionSeconds))
	}
	switch c.Results.Backend {
	case ResultsBackendCSV, ResultsBackendSQLite:
	default:
		errs = append(errs, fmt.Errorf("results.backend must be %q or %q, got %q",
			ResultsBackendCSV, ResultsBackendSQLite, c.Results.Backend))
	}
	if c.Results.Path == "" {
		errs = append(errs, errors.New("results.path must not be empty"))
	}
	if c.Assets.Manifest == "" {
		errs = append(errs, errors.New("assets.manifest must not be empty"))
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		errs = append(errs, errors.New("metrics.path must not be empty when metrics are enabled"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
