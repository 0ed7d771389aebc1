// file: utils/code_generator.go
package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateVerificationToken 生成邮箱验证令牌
func GenerateVerificationToken() string {
	part1 := strings.Replace(uuid.New().String(), "-", "", -1)
	part2 := strings.Replace(uuid.New().String(), "-", "", -1)
	return part1 + part2
}
