package scenes

import (
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/sato2d/pkg/config"
	"github.com/decker502/sato2d/pkg/game"
	"github.com/decker502/sato2d/pkg/utils"
)

// PlayScene 游戏进行中：背景、右下角剩余秒数、当前靶子
// 只读取 Session 状态，不修改
type PlayScene struct {
	assets  *Assets
	session *game.Session
}

// NewPlayScene creates the in-game view for one session.
func NewPlayScene(assets *Assets, session *game.Session) *PlayScene {
	return &PlayScene{assets: assets, session: session}
}

func (s *PlayScene) Update(deltaTime float64) {}

func (s *PlayScene) Draw(screen *ebiten.Image) {
	s.assets.drawBackground(screen)
	if s.session == nil {
		return
	}

	utils.DrawText(screen, CountdownLabel(s.session.TimeLeft()), s.assets.CountFace,
		float64(config.GameWindowWidth)-config.CountdownMarginRight,
		float64(config.GameWindowHeight)-config.CountdownMarginBottom,
		1, utils.AnchorBottomRight, config.CountdownTextColor)

	if t := s.session.ActiveTarget(); t != nil {
		cx, cy := t.Center()
		vector.DrawFilledCircle(screen, float32(cx), float32(cy), float32(t.Radius), config.TargetColor, true)
	}
}

// CountdownLabel 倒计时文字，归零后为空
func CountdownLabel(timeLeft int) string {
	if timeLeft <= 0 {
		return ""
	}
	return strconv.Itoa(timeLeft)
}
