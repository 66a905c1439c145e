package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/rs/zerolog"

	"github.com/decker502/sato2d/pkg/app"
	"github.com/decker502/sato2d/pkg/config"
	"github.com/decker502/sato2d/pkg/game"
	"github.com/decker502/sato2d/pkg/logger"
	"github.com/decker502/sato2d/pkg/metrics"
	"github.com/decker502/sato2d/pkg/results"
	"github.com/decker502/sato2d/pkg/utils"
)

// audioSampleRate 全局音频上下文采样率
const audioSampleRate = 48000

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(logger.Options{Level: cfg.LogLevel, Verbose: cfg.Verbose}); err != nil {
		fmt.Fprintf(os.Stderr, "日志初始化失败: %v\n", err)
		os.Exit(1)
	}
	log := logger.Named("main")

	if err := run(cfg, log); err != nil {
		var loadErr *game.AssetLoadError
		if errors.As(err, &loadErr) {
			log.Error().Str("kind", loadErr.Kind).Str("id", loadErr.ID).Str("path", loadErr.Path).
				Err(loadErr.Err).Msg("missing or unreadable asset")
		} else {
			log.Error().Err(err).Msg("game terminated with error")
		}
		os.Exit(1)
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	// 设置存储不可用时降级为仅内存设置
	storage, err := utils.OpenStorage(cfg.Storage.AppName)
	if err != nil {
		log.Warn().Err(err).Msg("settings will not be persisted")
		storage = nil
	}
	settingsManager := game.NewSettingsManager(storage)

	audioContext := audio.NewContext(audioSampleRate)
	resourceManager := game.NewResourceManager(os.DirFS("."), audioContext)
	if err := resourceManager.LoadResourceConfig(cfg.Assets.Manifest); err != nil {
		return err
	}
	if err := resourceManager.LoadResourceGroup(config.ResourceGroupInit); err != nil {
		return err
	}
	audioManager := game.NewAudioManager(resourceManager, settingsManager)
	audioManager.PreloadSounds(config.SoundShot, config.SoundHit)

	store, err := results.Open(cfg.Results.Backend, cfg.Results.Path)
	if err != nil {
		return fmt.Errorf("open results store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close results store")
		}
	}()

	metricsManager := metrics.NewManager(metrics.WithMetricsEnabled(cfg.Metrics.Enabled))

	gameApp, err := app.NewApp(app.Config{
		ResourceManager: resourceManager,
		AudioManager:    audioManager,
		SettingsManager: settingsManager,
		Store:           store,
		Metrics:         metricsManager,
		MetricsPath:     cfg.Metrics.Path,
		TPS:             cfg.TPS,
		SessionSeconds:  cfg.SessionSeconds,
	})
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(settingsManager.GetSettings().Fullscreen)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(cfg.TPS)

	log.Info().
		Int("tps", cfg.TPS).
		Int("sessionSeconds", cfg.SessionSeconds).
		Str("results", cfg.Results.Backend+":"+cfg.Results.Path).
		Msg("starting")

	// 控制器进入 Exit 状态时 Update 返回 ebiten.Termination，RunGame 返回 nil
	runErr := ebiten.RunGame(gameApp)

	if err := settingsManager.Save(); err != nil {
		log.Warn().Err(err).Msg("failed to save settings")
	}
	gameApp.FlushMetrics()
	log.Info().Msg("bye")
	return runErr
}
