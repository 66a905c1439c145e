// Package app 提供游戏应用的核心包装器
//
// App 实现 ebiten.Game：每个 tick 采集输入并转成控制器事件，
// 推进控制器，控制器状态变化时切换场景，进入 Exit 状态后结束主循环。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"github.com/decker502/sato2d/pkg/config"
	"github.com/decker502/sato2d/pkg/game"
	"github.com/decker502/sato2d/pkg/logger"
	"github.com/decker502/sato2d/pkg/metrics"
	"github.com/decker502/sato2d/pkg/results"
	"github.com/decker502/sato2d/pkg/scenes"
	"github.com/decker502/sato2d/pkg/utils"
)

// Config 定义应用启动配置
type Config struct {
	ResourceManager *game.ResourceManager // 必须已加载资源清单
	AudioManager    *game.AudioManager    // 可为 nil（静音）
	SettingsManager *game.SettingsManager // 可为 nil
	Store           results.Store         // 可为 nil（不记录成绩）
	Metrics         *metrics.Manager      // 可为 nil
	MetricsPath     string                // 每局结束后导出指标的文件，为空则不导出

	TPS            int
	SessionSeconds int

	// Clock / Rand 为空时使用系统时间和随机种子
	Clock game.Clock
	Rand  *rand.Rand
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	controller   *game.Controller
	sceneManager *game.SceneManager
	settings     *game.SettingsManager
	metrics      *metrics.Manager
	metricsPath  string

	poll      func() utils.FrameInput
	deltaTime float64
	logger    zerolog.Logger

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 场景资源在这里一次性加载，缺失时返回 *game.AssetLoadError。
func NewApp(cfg Config) (*App, error) {
	if cfg.ResourceManager == nil {
		return nil, errors.New("app: resource manager is required")
	}
	if cfg.TPS <= 0 {
		cfg.TPS = config.DefaultTPS
	}

	assets, err := scenes.LoadAssets(cfg.ResourceManager)
	if err != nil {
		return nil, fmt.Errorf("load scene assets: %w", err)
	}

	a := &App{
		sceneManager: game.NewSceneManager(),
		settings:     cfg.SettingsManager,
		metrics:      cfg.Metrics,
		metricsPath:  cfg.MetricsPath,
		poll:         utils.NewInputTracker().Poll,
		deltaTime:    1.0 / float64(cfg.TPS),
		logger:       logger.Named("App"),
	}

	opts := []game.ControllerOption{
		game.WithSessionSeconds(cfg.SessionSeconds),
		game.WithStore(cfg.Store),
		game.WithHooks(a.hooks(cfg.AudioManager)),
	}
	if cfg.Clock != nil {
		opts = append(opts, game.WithClock(cfg.Clock))
	}
	if cfg.Rand != nil {
		opts = append(opts, game.WithRand(cfg.Rand))
	}
	a.controller = game.NewController(opts...)

	a.sceneManager.SetSceneFactory(scenes.NewSceneFactory(assets, a.controller))
	a.sceneManager.LoadState(a.controller.State())
	return a, nil
}

// hooks 把控制器的副作用接到音效、指标和场景切换上
func (a *App) hooks(am *game.AudioManager) game.Hooks {
	return game.Hooks{
		OnShot: func() {
			if am != nil {
				am.PlaySound(config.SoundShot)
			}
			if a.metrics != nil {
				a.metrics.RecordShot()
			}
		},
		OnHit: func() {
			if am != nil {
				am.PlaySound(config.SoundHit)
			}
			if a.metrics != nil {
				a.metrics.RecordHit()
			}
		},
		OnStateChange: func(from, to game.State) {
			a.sceneManager.LoadState(to)
		},
		OnSessionFinished: func(res game.Result, persistErr error) {
			if a.metrics == nil {
				return
			}
			a.metrics.RecordSession(res.FinalScore, res.Accuracy, persistErr == nil)
			a.FlushMetrics()
		},
	}
}

// Update 更新游戏逻辑，每个 tick 调用一次
// 控制器进入 Exit 状态后返回 ebiten.Termination
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	in := a.poll()
	if in.ToggleFullscreen {
		a.toggleFullscreen()
	}

	for _, ev := range EventsFromInput(in) {
		if err := a.controller.HandleEvent(ev); err != nil {
			// 与当前状态不符的事件直接丢弃
			a.logger.Debug().Err(err).Msg("event ignored")
		}
	}
	a.controller.Update()

	if a.controller.State() == game.StateExit {
		return ebiten.Termination
	}
	a.sceneManager.Update(a.deltaTime)
	return nil
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
	} else {
		ebiten.SetFullscreen(true)
	}
	if a.settings != nil {
		a.settings.SetFullscreen(!a.settings.GetSettings().Fullscreen)
	}
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时用黑色填充 letterbox 区域，并用线性滤波缩放画面
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// FlushMetrics 导出指标文件，失败只记录日志
func (a *App) FlushMetrics() {
	if a.metrics == nil || a.metricsPath == "" {
		return
	}
	if err := a.metrics.WriteTextfile(a.metricsPath); err != nil {
		a.logger.Warn().Err(err).Str("path", a.metricsPath).Msg("failed to export metrics")
	}
}

// Controller 返回游戏控制器
func (a *App) Controller() *game.Controller {
	return a.controller
}

// SceneManager 返回场景管理器
func (a *App) SceneManager() *game.SceneManager {
	return a.sceneManager
}
