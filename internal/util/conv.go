package util

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

// MustParseUint 将字符串转换为无符号整数，解析失败时返回 0
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 32)
	return uint(id)
}

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomCode 生成班级邀请码（大写字母+数字）
func RandomCode(length int) string {
	return randomFrom(codeAlphabet, length)
}

// RandomPassword 生成随机初始密码
func RandomPassword(length int) string {
	return randomFrom(passwordAlphabet, length)
}

func randomFrom(alphabet string, length int) string {
	b := make([]byte, length)
	max := big.NewInt(int64(len(alphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			b[i] = alphabet[0]
			continue
		}
		b[i] = alphabet[n.Int64()]
	}
	return string(b)
}
