package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/decker502/sato2d/pkg/config"
	"github.com/decker502/sato2d/pkg/game"
	"github.com/decker502/sato2d/pkg/utils"
)

// PostGameScene 结算界面
//
// 三行白字自上而下排列："GAME OVER"、分数、重新开始提示。
// 分数字号随命中数增大，超出屏幕宽度时按比例缩小。
// 面板在第一次绘制时渲染到离屏图像，之后每帧直接贴图。
type PostGameScene struct {
	assets    *Assets
	result    game.Result
	scoreFace *text.GoTextFace
	panel     *ebiten.Image
}

// NewPostGameScene creates the results screen for a finished session.
func NewPostGameScene(assets *Assets, result game.Result) (*PostGameScene, error) {
	face, err := assets.ScoreFace(config.ScoreFontSize(result.TotalHits))
	if err != nil {
		return nil, err
	}
	return &PostGameScene{
		assets:    assets,
		result:    result,
		scoreFace: face,
	}, nil
}

// ScoreText 分数行文字
func (s *PostGameScene) ScoreText() string {
	return "SCORE: " + s.result.FormattedScore()
}

// Layout 返回三行文字的中心 y 坐标以及分数行的缩放比例
//
// 第一行顶部位于 (屏幕高度 - 三行总高度) / 2，行间距不计入总高度，
// 因此整体略低于正中。
func (s *PostGameScene) Layout() (ys []float64, scoreScale float64) {
	scoreW, scoreH := utils.MeasureText(s.ScoreText(), s.scoreFace)
	scoreScale = utils.FitScale(scoreW, config.GameWindowWidth)

	_, titleH := utils.MeasureText("GAME OVER", s.assets.TitleFace)
	_, promptH := utils.MeasureText(promptRetry, s.assets.PromptFace)
	heights := []float64{titleH, scoreH * scoreScale, promptH}

	total := titleH + scoreH*scoreScale + promptH
	top := (float64(config.GameWindowHeight) - total) / 2
	return utils.StackCenters(heights, config.PostGameLineGap, top), scoreScale
}

const promptRetry = "Press Space to Try Again"

func (s *PostGameScene) Update(deltaTime float64) {}

func (s *PostGameScene) Draw(screen *ebiten.Image) {
	if s.panel == nil {
		s.renderPanel()
	}
	s.assets.drawBackground(screen)
	screen.DrawImage(s.panel, nil)
}

func (s *PostGameScene) renderPanel() {
	s.panel = ebiten.NewImage(config.GameWindowWidth, config.GameWindowHeight)
	s.panel.Fill(config.PostGameOverlay)

	ys, scale := s.Layout()
	cx := float64(config.GameWindowWidth) / 2
	clr := config.PostGameTextColor
	utils.DrawText(s.panel, "GAME OVER", s.assets.TitleFace, cx, ys[0], 1, utils.AnchorCenter, clr)
	utils.DrawText(s.panel, s.ScoreText(), s.scoreFace, cx, ys[1], scale, utils.AnchorCenter, clr)
	utils.DrawText(s.panel, promptRetry, s.assets.PromptFace, cx, ys[2], 1, utils.AnchorCenter, clr)
}

// Dispose releases the offscreen panel.
func (s *PostGameScene) Dispose() {
	if s.panel != nil {
		s.panel.Deallocate()
		s.panel = nil
	}
}
