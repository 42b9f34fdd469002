package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMustParseUint(t *testing.T) {
	assert.Equal(t, uint(123), MustParseUint("123"))
	assert.Equal(t, uint(0), MustParseUint("abc"))
	assert.Equal(t, uint(0), MustParseUint(""))
	assert.Equal(t, uint(0), MustParseUint("-5"))
}

func TestRandomCode(t *testing.T) {
	code := RandomCode(6)
	assert.Len(t, code, 6)
	for _, ch := range code {
		assert.True(t, strings.ContainsRune(codeAlphabet, ch), "unexpected char %q", ch)
	}

	// 大样本下不应撞码
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		seen[RandomCode(8)] = true
	}
	assert.Greater(t, len(seen), 95)
}

func TestRandomPassword(t *testing.T) {
	pw := RandomPassword(12)
	assert.Len(t, pw, 12)
	for _, ch := range pw {
		assert.True(t, strings.ContainsRune(passwordAlphabet, ch), "unexpected char %q", ch)
	}
}
