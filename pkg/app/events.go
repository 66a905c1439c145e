package app

import (
	"github.com/decker502/sato2d/pkg/game"
	"github.com/decker502/sato2d/pkg/utils"
)

// EventsFromInput 把一帧的输入转换为控制器事件
//
// 顺序：鼠标/触摸抬起 → 空格 → 关闭窗口。
// 同一帧里先结算点击，再处理开始/重新开始，最后退出。
func EventsFromInput(in utils.FrameInput) []game.Event {
	if in.Empty() {
		return nil
	}

	events := make([]game.Event, 0, len(in.Releases)+2)
	for _, p := range in.Releases {
		events = append(events, game.Event{Kind: game.EventClick, X: p.X, Y: p.Y})
	}
	if in.StartPressed {
		events = append(events, game.Event{Kind: game.EventStart})
	}
	if in.CloseRequested {
		events = append(events, game.Event{Kind: game.EventQuit})
	}
	return events
}
