package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents one screen of the game (title, play field, results).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	// screen is the target image where the scene should be drawn.
	Draw(screen *ebiten.Image)
}

// Disposable 是一个可选接口，场景被替换时释放自己创建的资源
//
// SceneManager 在切换到新场景前调用旧场景的 Dispose()，
// 用于释放只属于该场景的离屏图像等资源（共享资源由 ResourceManager 持有，不在此释放）。
type Disposable interface {
	Dispose()
}
