package results

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const createResultsTable = `
CREATE TABLE IF NOT EXISTS results (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	accuracy      REAL    NOT NULL,
	clicks_halved REAL    NOT NULL,
	hits          INTEGER NOT NULL
)`

// SQLiteStore 把成绩记录追加到 SQLite 的 results 表
// 表结构在创建时固定，只执行 INSERT
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLite 打开（必要时创建）SQLite 数据库并确保 results 表存在
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db, path: path}, nil
}

// Migrate 创建 results 表
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(createResultsTable); err != nil {
		return fmt.Errorf("failed to create results table: %w", err)
	}
	return nil
}

// Path 返回数据库文件路径
func (s *SQLiteStore) Path() string {
	return s.path
}

// Append 插入一条记录
func (s *SQLiteStore) Append(rec Record) error {
	_, err := s.db.Exec(`INSERT INTO results(accuracy, clicks_halved, hits) VALUES(?, ?, ?)`,
		rec.Accuracy, rec.ClicksHalved, rec.Hits)
	if err != nil {
		return fmt.Errorf("failed to insert result into %s: %w", s.path, err)
	}
	return nil
}

// Close 关闭数据库连接
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
