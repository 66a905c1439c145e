package game

import "time"

// Clock 时间源
// 倒计时按墙上时间推进，与帧率无关；测试中可替换为手动推进的时钟
type Clock interface {
	Now() time.Time
}

// SystemClock 使用系统时间
type SystemClock struct{}

// Now 返回当前系统时间
func (SystemClock) Now() time.Time {
	return time.Now()
}
