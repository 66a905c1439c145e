// Package logger 配置全局 zerolog 日志
//
// 终端下使用易读的 ConsoleWriter，重定向到文件或管道时输出 JSON。
// 各组件通过 Named() 获取带 component 字段的子日志器。
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options 日志初始化参数
type Options struct {
	// Level 日志级别：debug, info, warn/warning, error
	Level string
	// Verbose 为 false 时最低级别提升到 warn
	Verbose bool
	// Output 输出目标，为 nil 时使用 os.Stderr
	Output io.Writer
}

// Init 初始化全局日志器
func Init(opts Options) error {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return err
	}
	if !opts.Verbose && level < zerolog.WarnLevel {
		level = zerolog.WarnLevel
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	zerolog.TimeFieldFormat = time.RFC3339
	if isTerminal(out) {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05.000"}
	}

	log.Logger = zerolog.New(out).Level(level).With().Timestamp().Logger()
	return nil
}

// Named 返回带 component 字段的子日志器
func Named(component string) zerolog.Logger {
	return log.Logger.With().Str("component", component).Logger()
}

// ParseLevel 解析日志级别字符串（大小写不敏感）
func ParseLevel(level string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "", "info":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("unknown log level: %s", level)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
