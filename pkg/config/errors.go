package config

import "errors"

// 配置相关的哨兵错误，调用方可通过 errors.Is 判断
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)
