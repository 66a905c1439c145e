// Package utils 提供通用工具函数
package utils

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// FrameInput 一帧内收集到的输入
type FrameInput struct {
	// StartPressed 空格键刚刚按下
	StartPressed bool
	// Releases 本帧所有鼠标按键（任意键）/触摸抬起的位置，每次抬起一项
	Releases []image.Point
	// CloseRequested 玩家点击了窗口关闭按钮
	CloseRequested bool
	// ToggleFullscreen F11 刚刚按下
	ToggleFullscreen bool
}

// Empty 本帧是否没有任何输入
func (in FrameInput) Empty() bool {
	return !in.StartPressed && !in.CloseRequested && len(in.Releases) == 0
}

// InputTracker 每帧采集输入
// 触摸抬起时 ebiten 已无法查询该触点坐标，因此记录每个触点最后的位置
type InputTracker struct {
	lastTouch map[ebiten.TouchID]image.Point
}

// NewInputTracker 创建输入采集器
func NewInputTracker() *InputTracker {
	return &InputTracker{
		lastTouch: make(map[ebiten.TouchID]image.Point),
	}
}

// Poll 采集当前帧的输入，每个 tick 调用一次
func (t *InputTracker) Poll() FrameInput {
	var in FrameInput

	for _, id := range inpututil.AppendJustReleasedTouchIDs(nil) {
		if p, ok := t.lastTouch[id]; ok {
			in.Releases = append(in.Releases, p)
			delete(t.lastTouch, id)
		}
	}
	for _, id := range ebiten.AppendTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		t.lastTouch[id] = image.Pt(x, y)
	}

	x, y := ebiten.CursorPosition()
	in.Releases = appendMouseReleases(in.Releases, inpututil.IsMouseButtonJustReleased, image.Pt(x, y))

	in.StartPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	in.CloseRequested = ebiten.IsWindowBeingClosed()
	in.ToggleFullscreen = inpututil.IsKeyJustPressed(ebiten.KeyF11)
	return in
}

// appendMouseReleases 对本帧抬起的每个鼠标按键追加一次光标位置
// 左、右、中键及侧键都算一次点击
func appendMouseReleases(dst []image.Point, justReleased func(ebiten.MouseButton) bool, cursor image.Point) []image.Point {
	for b := ebiten.MouseButton0; b <= ebiten.MouseButtonMax; b++ {
		if justReleased(b) {
			dst = append(dst, cursor)
		}
	}
	return dst
}
