// Package leveling 把累计经验值换算成等级和当前等级内的进度。
//
// 升级阈值按几何级数增长：1 级升 2 级需要 1000 XP，之后每级是上一级的 1.5 倍（向下取整）。
package leveling

import "math"

const (
	BaseXP     = 1000
	Multiplier = 1.5
)

// Progress 当前等级内已获得的经验和升到下一级所需经验
type Progress struct {
	Current  int `json:"current"`
	Required int `json:"required"`
}

// Threshold 从 level 升到 level+1 所需的经验
func Threshold(level int) int {
	if level < 1 {
		level = 1
	}
	return int(math.Floor(BaseXP * math.Pow(Multiplier, float64(level-1))))
}

// LevelFromXP 负数经验按 0 处理
func LevelFromXP(xp int) int {
	if xp < 0 {
		xp = 0
	}

	level := 1
	accumulated := 0
	for accumulated+Threshold(level) <= xp {
		accumulated += Threshold(level)
		level++
	}
	return level
}

// ProgressForLevel 以 level 之前所有阈值之和为基线计算进度
func ProgressForLevel(xp, level int) Progress {
	if xp < 0 {
		xp = 0
	}

	baseline := 0
	for i := 1; i < level; i++ {
		baseline += Threshold(i)
	}

	return Progress{
		Current:  xp - baseline,
		Required: Threshold(level),
	}
}

// Percent 进度百分比，截断在 [0, 100]
func (p Progress) Percent() float64 {
	if p.Required <= 0 || p.Current <= 0 {
		return 0
	}
	return math.Min(float64(p.Current)/float64(p.Required)*100, 100)
}

// CachedOrDerived 优先使用统计表里缓存的等级，缺失时由经验推导
func CachedOrDerived(cachedLevel, xp int) int {
	if cachedLevel > 0 {
		return cachedLevel
	}
	return LevelFromXP(xp)
}
