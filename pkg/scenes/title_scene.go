package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/sato2d/pkg/config"
	"github.com/decker502/sato2d/pkg/utils"
)

// TitleScene 标题界面：背景、居中的 "SATO2D" 和开始提示
type TitleScene struct {
	assets *Assets
}

// NewTitleScene creates the title screen.
func NewTitleScene(assets *Assets) *TitleScene {
	return &TitleScene{assets: assets}
}

func (s *TitleScene) Update(deltaTime float64) {}

func (s *TitleScene) Draw(screen *ebiten.Image) {
	s.assets.drawBackground(screen)

	cx := float64(config.GameWindowWidth) / 2
	cy := float64(config.GameWindowHeight) / 2
	utils.DrawText(screen, "SATO2D", s.assets.TitleFace, cx, cy, 1, utils.AnchorCenter, config.TitleTextColor)
	utils.DrawText(screen, "Press Space to Start", s.assets.PromptFace,
		cx, cy+config.TitlePromptOffsetY, 1, utils.AnchorCenter, config.TitleTextColor)
}
