package game

import (
	"image"

	"github.com/decker502/sato2d/pkg/config"
)

// Target 一个可点击的圆形靶子
//
// 位置 (X, Y) 为外接矩形左上角。命中判定使用外接矩形而非真实圆形距离，
// 矩形为半开区间：左/上边界包含，右/下边界不包含。
type Target struct {
	X, Y   int
	Radius int
}

// NewTarget 在指定左上角位置创建标准半径的靶子
func NewTarget(x, y int) *Target {
	return &Target{X: x, Y: y, Radius: config.TargetRadius}
}

// Bounds 返回靶子的外接矩形
func (t *Target) Bounds() image.Rectangle {
	d := 2 * t.Radius
	return image.Rect(t.X, t.Y, t.X+d, t.Y+d)
}

// Contains 判断点 (px, py) 是否落在靶子的外接矩形内
func (t *Target) Contains(px, py int) bool {
	return image.Pt(px, py).In(t.Bounds())
}

// Center 返回靶子圆心坐标（用于绘制）
func (t *Target) Center() (float64, float64) {
	r := float64(t.Radius)
	return float64(t.X) + r, float64(t.Y) + r
}
