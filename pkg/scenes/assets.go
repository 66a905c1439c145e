package scenes

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/decker502/sato2d/pkg/config"
	"github.com/decker502/sato2d/pkg/game"
)

// Assets 所有场景共用的图片和字体
// 启动时加载一次，场景只持有引用，绘制时不再访问文件系统
type Assets struct {
	rm *game.ResourceManager

	Background *ebiten.Image
	TitleFace  *text.GoTextFace
	PromptFace *text.GoTextFace
	CountFace  *text.GoTextFace
}

// LoadAssets 从资源管理器获取场景资源
// 背景图或字体缺失时返回 *game.AssetLoadError，不做降级
func LoadAssets(rm *game.ResourceManager) (*Assets, error) {
	a := &Assets{rm: rm}

	bg, err := rm.LoadImageByID(config.ImageBackground)
	if err != nil {
		return nil, err
	}
	a.Background = bg

	faces := []struct {
		dst  **text.GoTextFace
		size float64
	}{
		{&a.TitleFace, config.TitleFontSize},
		{&a.PromptFace, config.PromptFontSize},
		{&a.CountFace, config.CountdownFontSize},
	}
	for _, f := range faces {
		face, err := rm.LoadFontByID(config.FontDecorative, f.size)
		if err != nil {
			return nil, fmt.Errorf("scene fonts: %w", err)
		}
		*f.dst = face
	}
	return a, nil
}

// ScoreFace 返回指定字号的分数字体
func (a *Assets) ScoreFace(size float64) (*text.GoTextFace, error) {
	return a.rm.LoadFontByID(config.FontDecorative, size)
}

// drawBackground 绘制拉伸到逻辑屏幕大小的背景图
func (a *Assets) drawBackground(screen *ebiten.Image) {
	bounds := a.Background.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(
		float64(config.GameWindowWidth)/float64(bounds.Dx()),
		float64(config.GameWindowHeight)/float64(bounds.Dy()),
	)
	screen.DrawImage(a.Background, op)
}
