package scenes

import (
	"github.com/rs/zerolog"

	"github.com/decker502/sato2d/pkg/game"
	"github.com/decker502/sato2d/pkg/logger"
)

// NewSceneFactory 返回根据控制器状态创建场景的工厂
// Exit 状态没有场景，保持最后一帧
func NewSceneFactory(assets *Assets, controller *game.Controller) game.SceneFactory {
	log := logger.Named("Scenes")
	return func(state game.State) game.Scene {
		switch state {
		case game.StateWaiting:
			return NewTitleScene(assets)
		case game.StatePlaying:
			return NewPlayScene(assets, controller.Session())
		case game.StateGameOver:
			return newPostGame(assets, controller, log)
		default:
			return nil
		}
	}
}

func newPostGame(assets *Assets, controller *game.Controller, log zerolog.Logger) game.Scene {
	res := controller.Result()
	if res == nil {
		log.Error().Msg("game over without a result")
		return nil
	}
	scene, err := NewPostGameScene(assets, *res)
	if err != nil {
		log.Error().Err(err).Msg("failed to create results screen")
		return nil
	}
	return scene
}
