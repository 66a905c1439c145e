package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/decker502/sato2d/pkg/config"
	"github.com/decker502/sato2d/pkg/logger"
	"github.com/decker502/sato2d/pkg/results"
	"github.com/rs/zerolog"
)

// State 游戏状态
type State int

const (
	// StateWaiting 标题界面，等待开始
	StateWaiting State = iota
	// StatePlaying 倒计时进行中
	StatePlaying
	// StateGameOver 结算界面
	StateGameOver
	// StateExit 终止状态，主循环应结束
	StateExit
)

func (s State) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "gameover"
	case StateExit:
		return "exit"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// EventKind 输入事件类型
type EventKind int

const (
	// EventStart 开始/重新开始键（空格）按下
	EventStart EventKind = iota
	// EventClick 鼠标左键抬起
	EventClick
	// EventQuit 窗口关闭
	EventQuit
)

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventClick:
		return "click"
	case EventQuit:
		return "quit"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event 一个输入事件，X/Y 仅对 EventClick 有意义
type Event struct {
	Kind EventKind
	X, Y int
}

// Hooks 控制器的副作用回调，均可为 nil
type Hooks struct {
	// OnShot 每次有效点击时调用（无论是否命中）
	OnShot func()
	// OnHit 点击命中靶子时调用
	OnHit func()
	// OnStateChange 状态切换后调用
	OnStateChange func(from, to State)
	// OnSessionFinished 一局结算后调用，persistErr 为成绩写入错误（成功时为 nil）
	OnSessionFinished func(res Result, persistErr error)
}

// ControllerOption 控制器配置项
type ControllerOption func(*Controller)

// WithClock 设置时间源
func WithClock(clock Clock) ControllerOption {
	return func(c *Controller) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithRand 设置靶子位置随机数源
func WithRand(rng *rand.Rand) ControllerOption {
	return func(c *Controller) {
		if rng != nil {
			c.rng = rng
		}
	}
}

// WithSessionSeconds 设置每局倒计时长度
func WithSessionSeconds(seconds int) ControllerOption {
	return func(c *Controller) {
		if seconds > 0 {
			c.sessionSeconds = seconds
		}
	}
}

// WithStore 设置成绩存储
func WithStore(store results.Store) ControllerOption {
	return func(c *Controller) {
		c.store = store
	}
}

// WithHooks 设置副作用回调
func WithHooks(hooks Hooks) ControllerOption {
	return func(c *Controller) {
		c.hooks = hooks
	}
}

// Controller 游戏主控制器（状态机）
//
// 状态流转：
//
//	Waiting --start--> Playing --倒计时归零--> GameOver --start--> Waiting
//	任意状态 --quit--> Exit
//
// 控制器独占点击计数、当前局和结算结果，所有修改都在主循环中同步完成。
type Controller struct {
	state          State
	clickCount     int
	session        *Session
	result         *Result
	sessionSeconds int

	clock  Clock
	rng    *rand.Rand
	store  results.Store
	hooks  Hooks
	logger zerolog.Logger
}

// NewController 创建控制器，初始状态为 Waiting
func NewController(opts ...ControllerOption) *Controller {
	c := &Controller{
		state:          StateWaiting,
		sessionSeconds: config.DefaultSessionSeconds,
		clock:          SystemClock{},
		rng:            rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:         logger.Named("Controller"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HandleEvent 处理一个输入事件
//
// 返回：
//   - error: 事件不适用于当前状态时返回 ErrInvalidTransition，调用方忽略即可
func (c *Controller) HandleEvent(ev Event) error {
	if ev.Kind == EventQuit {
		c.Quit()
		return nil
	}

	switch c.state {
	case StateWaiting:
		if ev.Kind == EventStart {
			c.Start()
			return nil
		}
	case StatePlaying:
		if ev.Kind == EventClick {
			c.click(ev.X, ev.Y)
			return nil
		}
	case StateGameOver:
		if ev.Kind == EventStart {
			c.Restart()
			return nil
		}
	}
	return fmt.Errorf("%w: %s in state %s", ErrInvalidTransition, ev.Kind, c.state)
}

// Update 每帧在事件处理之后调用
// Playing 状态下推进倒计时；倒计时归零后的下一帧结算并进入 GameOver
func (c *Controller) Update() {
	if c.state != StatePlaying || c.session == nil {
		return
	}
	if c.session.TimeLeft() > 0 {
		c.session.Update(c.clock.Now())
		return
	}
	c.finish()
}

// Start 开始新的一局：Waiting → Playing
func (c *Controller) Start() {
	if c.state != StateWaiting {
		return
	}
	c.clickCount = 0
	c.session = NewSession(c.sessionSeconds, c.clock.Now(), c.rng)
	c.logger.Info().
		Str("session", c.session.ID.String()).
		Int("seconds", c.sessionSeconds).
		Msg("session started")
	c.setState(StatePlaying)
}

// Restart 丢弃上一局的数据并回到标题界面：GameOver → Waiting
func (c *Controller) Restart() {
	if c.state != StateGameOver {
		return
	}
	c.clickCount = 0
	c.session = nil
	c.result = nil
	c.setState(StateWaiting)
}

// Quit 进入终止状态
func (c *Controller) Quit() {
	if c.state == StateExit {
		return
	}
	c.setState(StateExit)
}

func (c *Controller) click(x, y int) {
	c.clickCount += config.ClickWeight
	if c.hooks.OnShot != nil {
		c.hooks.OnShot()
	}
	if c.session.RegisterClick(x, y) && c.hooks.OnHit != nil {
		c.hooks.OnHit()
	}
}

// finish 结算本局：Playing → GameOver
// 命中数取 已生成靶子数 - 1（最后一个靶子视为未命中）
func (c *Controller) finish() {
	hits := c.session.TargetsSpawned() - 1
	if hits < 0 {
		c.logger.Warn().Int("targetsSpawned", c.session.TargetsSpawned()).Msg("negative hit count clamped to 0")
		hits = 0
	}

	res := NewResult(c.clickCount, hits)
	c.result = &res

	persistErr := c.persist(res)

	c.logger.Info().
		Str("session", c.session.ID.String()).
		Int("clicks", res.TotalClicks).
		Int("hits", res.TotalHits).
		Int("targetsHit", c.session.Hits()).
		Float64("accuracy", res.Accuracy).
		Int("multiplier", res.Multiplier).
		Int("score", res.FinalScore).
		Msg("session finished")

	if c.hooks.OnSessionFinished != nil {
		c.hooks.OnSessionFinished(res, persistErr)
	}
	c.setState(StateGameOver)
}

func (c *Controller) persist(res Result) error {
	if c.store == nil {
		return nil
	}
	if err := c.store.Append(res.Record()); err != nil {
		perr := &PersistenceError{Op: "append result", Err: err}
		c.logger.Error().Err(perr).Msg("failed to persist result")
		return perr
	}
	return nil
}

func (c *Controller) setState(to State) {
	from := c.state
	c.state = to
	c.logger.Debug().Stringer("from", from).Stringer("to", to).Msg("state changed")
	if c.hooks.OnStateChange != nil {
		c.hooks.OnStateChange(from, to)
	}
}

// State 返回当前状态
func (c *Controller) State() State {
	return c.state
}

// ClickCount 返回当前点击计数
func (c *Controller) ClickCount() int {
	return c.clickCount
}

// Session 返回当前局，不在 Playing/GameOver 状态时为 nil
func (c *Controller) Session() *Session {
	return c.session
}

// Result 返回最近一局的结算结果，不在 GameOver 状态时为 nil
func (c *Controller) Result() *Result {
	return c.result
}
