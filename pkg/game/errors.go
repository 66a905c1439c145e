package game

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition 当前状态不接受该输入事件
// 调用方应直接忽略，不视为故障
var ErrInvalidTransition = errors.New("invalid state transition")

// AssetLoadError 图片、字体或音频资源加载失败
// 启动阶段遇到此错误应终止程序
type AssetLoadError struct {
	Kind string // "image", "font", "sound", "manifest"
	ID   string // 资源ID，可能为空
	Path string
	Err  error
}

func (e *AssetLoadError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to load %s %s (%s): %v", e.Kind, e.ID, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to load %s %s: %v", e.Kind, e.Path, e.Err)
}

func (e *AssetLoadError) Unwrap() error {
	return e.Err
}

// PersistenceError 成绩记录写入失败
// 只记录日志并通知监听者，不影响本局结算和结果显示
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
