package game

import (
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/rs/zerolog"

	"github.com/decker502/sato2d/pkg/logger"
)

// AudioManager 音效播放
// 通过资源ID播放，音量和开关取自 SettingsManager
// 播放即忘：每次播放都新建播放器，连续触发的同一音效会叠加而不是互相打断
type AudioManager struct {
	resourceManager *ResourceManager
	settingsManager *SettingsManager // 可为 nil
	active          []*audio.Player  // 仍在播放的播放器，用于调整音量
	unavailable     map[string]bool  // 加载失败的资源ID，只记录一次日志
	logger          zerolog.Logger
}

// NewAudioManager 创建音频管理器
//
// 参数：
//   - rm: ResourceManager 实例
//   - sm: SettingsManager 实例，可为 nil（使用默认音量）
func NewAudioManager(rm *ResourceManager, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		resourceManager: rm,
		settingsManager: sm,
		unavailable:     make(map[string]bool),
		logger:          logger.Named("AudioManager"),
	}
}

// PlaySound 播放音效
//
// 返回：
//   - bool: 是否成功开始播放（音效关闭或资源缺失时为 false）
func (am *AudioManager) PlaySound(soundID string) bool {
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return false
	}
	if am.unavailable[soundID] {
		return false
	}

	player, err := am.resourceManager.NewSoundPlayer(soundID)
	if err != nil {
		am.markUnavailable(soundID, err)
		return false
	}

	player.SetVolume(am.GetSoundVolume())
	player.Play()
	am.track(player)
	return true
}

// SetSoundVolume 修改音效音量并应用到正在播放的音效
func (am *AudioManager) SetSoundVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetSoundVolume(volume)
		volume = am.settingsManager.GetSettings().SoundVolume
	}
	for _, player := range am.active {
		player.SetVolume(volume)
	}
}

// GetSoundVolume 当前音效音量
func (am *AudioManager) GetSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return DefaultSettings().SoundVolume
}

// PreloadSounds 预先解码音效，避免第一次点击时卡顿
func (am *AudioManager) PreloadSounds(soundIDs ...string) {
	for _, id := range soundIDs {
		if _, err := am.resourceManager.LoadSoundByID(id); err != nil {
			am.markUnavailable(id, err)
		}
	}
}

func (am *AudioManager) markUnavailable(soundID string, err error) {
	am.unavailable[soundID] = true
	am.logger.Warn().Err(err).Str("sound", soundID).Msg("sound unavailable")
}

// track 记录新播放器，并丢弃已经播完的
func (am *AudioManager) track(player *audio.Player) {
	playing := am.active[:0]
	for _, p := range am.active {
		if p.IsPlaying() {
			playing = append(playing, p)
		}
	}
	am.active = append(playing, player)
}
