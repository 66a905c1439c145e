package utils

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Anchor 文本锚点
type Anchor int

const (
	// AnchorCenter (x, y) 为文本中心
	AnchorCenter Anchor = iota
	// AnchorBottomRight (x, y) 为文本右下角
	AnchorBottomRight
)

// MeasureText 测量单行文本的宽高
func MeasureText(str string, face text.Face) (float64, float64) {
	if str == "" || face == nil {
		return 0, 0
	}
	return text.Measure(str, face, 0)
}

// FitScale 返回让宽度 width 不超过 maxWidth 的缩放比例，不放大
func FitScale(width, maxWidth float64) float64 {
	if width <= maxWidth || width <= 0 {
		return 1
	}
	return maxWidth / width
}

// DrawText 按锚点绘制单行文本
//
// 参数：
//   - scale: 绘制缩放，1 为原始大小；缩放以锚点为中心
func DrawText(dst *ebiten.Image, str string, face text.Face, x, y, scale float64, anchor Anchor, clr color.Color) {
	if str == "" || face == nil {
		return
	}

	op := &text.DrawOptions{}
	switch anchor {
	case AnchorBottomRight:
		op.PrimaryAlign = text.AlignEnd
		op.SecondaryAlign = text.AlignEnd
	default:
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignCenter
	}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, str, face, op)
}

// StackCenters 计算自 top 起向下排列多行时每行中心的 y 坐标
//
// 参数：
//   - heights: 每行高度
//   - gap: 行间距
//   - top: 第一行顶部
func StackCenters(heights []float64, gap, top float64) []float64 {
	ys := make([]float64, len(heights))
	for i, h := range heights {
		ys[i] = top + h/2
		top += h + gap
	}
	return ys
}
