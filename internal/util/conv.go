package util

import (
	"strconv"
)

// ParseID 解析路径中的数字 ID，非法或为 0 时返回校验错误
func ParseID(s string, name string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, NewValidationError("invalid " + name)
	}
	return uint(id), nil
}
