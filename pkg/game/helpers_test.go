package game

import (
	"errors"
	"time"

	"github.com/decker502/sato2d/pkg/results"
)

// fakeClock 手动推进的时钟
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// memoryStore 记录写入的成绩，err 不为空时写入失败
type memoryStore struct {
	records []results.Record
	err     error
	closed  bool
}

func (s *memoryStore) Append(r results.Record) error {
	if s.err != nil {
		return s.err
	}
	s.records = append(s.records, r)
	return nil
}

func (s *memoryStore) Close() error {
	s.closed = true
	return nil
}

var errDiskFull = errors.New("disk full")
