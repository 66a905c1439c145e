package game

import (
	"math"
	"strconv"

	"github.com/decker502/sato2d/pkg/results"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Result 一局结束后的成绩，创建后不再修改
type Result struct {
	TotalClicks int
	TotalHits   int
	Misses      int
	Multiplier  int
	Accuracy    float64 // 百分比，包含 ×2 系数，可能超过 100
	FinalScore  int
}

var scorePrinter = message.NewPrinter(language.English)

// NewResult 根据点击数和命中数计算成绩
//
// 计算规则：
//   - misses = clicks - hits，basis = hits - misses，按 basis 查倍率
//   - clicks > 0：accuracy = round(hits/clicks*100*2, 2)，finalScore = floor(accuracy*hits) * multiplier
//   - clicks == 0：accuracy 与 finalScore 均为 0
func NewResult(totalClicks, totalHits int) Result {
	r := Result{
		TotalClicks: totalClicks,
		TotalHits:   totalHits,
		Misses:      totalClicks - totalHits,
	}
	r.Multiplier = Multiplier(r.TotalHits - r.Misses)

	if totalClicks > 0 {
		raw := float64(totalHits) / float64(totalClicks) * 100 * 2
		r.Accuracy = roundTo(raw, 2)
		r.FinalScore = int(math.Floor(r.Accuracy*float64(totalHits))) * r.Multiplier
	}
	return r
}

// Multiplier 根据 basis（命中数 - 失误数）返回倍率档位
//
//	basis <= 3 → 1
//	4..5       → 2
//	6..9       → 3
//	10..14     → 4
//	>= 15      → 5
func Multiplier(basis int) int {
	switch {
	case basis >= 15:
		return 5
	case basis >= 10:
		return 4
	case basis >= 6:
		return 3
	case basis >= 4:
		return 2
	default:
		return 1
	}
}

// FormattedScore 返回带千位分隔符的分数，如 "12,480"
func (r Result) FormattedScore() string {
	return scorePrinter.Sprintf("%d", r.FinalScore)
}

// Record 返回要持久化的成绩记录
func (r Result) Record() results.Record {
	return results.Record{
		Accuracy:     r.Accuracy,
		ClicksHalved: float64(r.TotalClicks) / 2,
		Hits:         r.TotalHits,
	}
}

// roundTo 按浮点数的精确值保留 places 位小数，恰好一半时取偶数（90.625 → 90.62）
func roundTo(v float64, places int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	return r
}
