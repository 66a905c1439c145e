// Package results 持久化每局成绩记录
//
// 记录是只追加的：每局结束追加一行，游戏进程内没有读取路径。
// 默认后端是 CSV 文件（无表头），也可以配置为 SQLite 表。
package results

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/decker502/sato2d/pkg/config"
)

// Record 一局成绩记录，字段顺序即存储列顺序
type Record struct {
	Accuracy     float64 // 命中率（已 ×2 的百分比）
	ClicksHalved float64 // 点击数 / 2
	Hits         int     // 命中数
}

// Fields 返回记录的三个字段的文本形式
// 浮点数总是带小数部分（如 160.0、5.0），与历史数据文件保持一致
func (r Record) Fields() []string {
	return []string{
		formatFloat(r.Accuracy),
		formatFloat(r.ClicksHalved),
		strconv.Itoa(r.Hits),
	}
}

// Store 只追加的成绩存储
type Store interface {
	// Append 追加一条记录
	Append(rec Record) error
	// Close 释放存储持有的资源
	Close() error
}

// Open 根据后端名称打开存储
//
// 参数：
//   - backend: "csv" 或 "sqlite"
//   - path: 文件路径
func Open(backend, path string) (Store, error) {
	switch backend {
	case config.ResultsBackendCSV:
		return NewCSVStore(path), nil
	case config.ResultsBackendSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown results backend: %s", backend)
	}
}

func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
