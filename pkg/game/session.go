package game

import (
	"math/rand"
	"time"

	"github.com/decker502/sato2d/pkg/config"
	"github.com/decker502/sato2d/pkg/logger"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DecrementInterval 倒计时每减 1 秒所需的最小墙上时间
const DecrementInterval = time.Second

// Session 一局游戏（倒计时）
//
// 职责：
//   - 维护剩余秒数，按墙上时间每秒递减 1
//   - 维护唯一的活动靶子：没有活动靶子且仍有剩余时间时生成新靶子
//   - 判定点击是否命中活动靶子
//
// 不变量：
//   - timeLeft 只减不增，每次减 1，两次递减间隔不少于 DecrementInterval，最小为 0
//   - 任意时刻至多一个活动靶子
type Session struct {
	ID uuid.UUID

	timeLeft       int
	initialLength  int
	targetsSpawned int
	hits           int
	active         *Target
	lastDecrement  time.Time

	rng        *rand.Rand
	maxX, maxY int
	logger     zerolog.Logger
}

// NewSession 创建新的一局
//
// 参数：
//   - seconds: 倒计时长度（秒）
//   - now: 开局时间，作为第一次递减的计时起点
//   - rng: 靶子位置随机数源
func NewSession(seconds int, now time.Time, rng *rand.Rand) *Session {
	if seconds < 0 {
		seconds = 0
	}
	maxX, maxY := config.PlayFieldBounds()
	id := uuid.New()
	return &Session{
		ID:            id,
		timeLeft:      seconds,
		initialLength: seconds,
		lastDecrement: now,
		rng:           rng,
		maxX:          maxX,
		maxY:          maxY,
		logger:        logger.Named("Session").With().Str("session", id.String()).Logger(),
	}
}

// Update 每帧调用一次：先推进计时，再确保靶子存在
// 剩余时间为 0 时不做任何事
func (s *Session) Update(now time.Time) {
	if s.timeLeft <= 0 {
		return
	}
	s.AdvanceTimer(now)
	s.EnsureTargetSpawned()
}

// AdvanceTimer 距上次递减已满 1 秒且仍有剩余时间时，剩余秒数减 1
//
// 返回：
//   - bool: 本次调用是否发生了递减
func (s *Session) AdvanceTimer(now time.Time) bool {
	if s.timeLeft <= 0 {
		return false
	}
	if now.Sub(s.lastDecrement) < DecrementInterval {
		return false
	}
	s.timeLeft--
	s.lastDecrement = now
	s.logger.Debug().Int("timeLeft", s.timeLeft).Msg("countdown tick")
	return true
}

// EnsureTargetSpawned 仍有剩余时间且没有活动靶子时，在随机位置生成一个靶子
//
// 返回：
//   - bool: 本次调用是否生成了新靶子
func (s *Session) EnsureTargetSpawned() bool {
	if s.timeLeft <= 0 || s.active != nil {
		return false
	}
	x := s.rng.Intn(s.maxX + 1)
	y := s.rng.Intn(s.maxY + 1)
	s.active = NewTarget(x, y)
	s.targetsSpawned++
	s.logger.Debug().Int("x", x).Int("y", y).Int("spawned", s.targetsSpawned).Msg("target spawned")
	return true
}

// RegisterClick 判定点击是否命中活动靶子，命中则移除靶子并累加命中数
//
// 返回：
//   - bool: 是否命中
func (s *Session) RegisterClick(x, y int) bool {
	if s.active == nil || !s.active.Contains(x, y) {
		return false
	}
	s.active = nil
	s.hits++
	s.logger.Debug().Int("x", x).Int("y", y).Int("hits", s.hits).Msg("target hit")
	return true
}

// TimeLeft 返回剩余秒数
func (s *Session) TimeLeft() int {
	return s.timeLeft
}

// InitialLength 返回本局倒计时长度
func (s *Session) InitialLength() int {
	return s.initialLength
}

// TargetsSpawned 返回本局已生成的靶子数
func (s *Session) TargetsSpawned() int {
	return s.targetsSpawned
}

// Hits 返回本局实际命中的靶子数
func (s *Session) Hits() int {
	return s.hits
}

// ActiveTarget 返回当前活动靶子，没有时返回 nil
func (s *Session) ActiveTarget() *Target {
	return s.active
}

// Expired 倒计时是否已结束
func (s *Session) Expired() bool {
	return s.timeLeft <= 0
}
