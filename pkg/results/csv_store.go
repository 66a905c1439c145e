package results

import (
	"encoding/csv"
	"fmt"
	"os"
)

// CSVStore 以 CSV 行追加成绩记录，不写表头
// 每次追加都以追加模式打开文件并在写完后关闭，文件中已有的内容不会被读取或修改
type CSVStore struct {
	path string
}

// NewCSVStore 创建 CSV 存储，文件在第一次追加时创建
func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// Path 返回存储文件路径
func (s *CSVStore) Path() string {
	return s.path
}

// Append 追加一行记录
func (s *CSVStore) Append(rec Record) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open results file %s: %w", s.path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(rec.Fields()); err != nil {
		f.Close()
		return fmt.Errorf("failed to write results record to %s: %w", s.path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("failed to flush results file %s: %w", s.path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close results file %s: %w", s.path, err)
	}
	return nil
}

// Close CSV 存储不持有打开的文件
func (s *CSVStore) Close() error {
	return nil
}
