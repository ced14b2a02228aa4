package util

import (
	"strconv"
)

// IntOrDefault 解析失败或为空时返回默认值
func IntOrDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// ClampLimit 把分页数量限制在 [1, max]
func ClampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
