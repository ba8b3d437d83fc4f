package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode_Shape(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		assert.Len(t, code, CodeLength)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(CodeAlphabet, r), "unexpected rune %q", r)
		}
		seen[code] = true
	}
	// 36^6 possibilities; 50 draws colliding down to a handful would mean a broken source
	assert.Greater(t, len(seen), 45)
}

func TestHashAndVerifyCode(t *testing.T) {
	hash, err := HashCode("ab12cd")
	require.NoError(t, err)
	assert.NotEqual(t, "ab12cd", hash)

	ok, err := VerifyCode(hash, "ab12cd")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyCode(hash, "AB12CD")
	require.NoError(t, err)
	assert.False(t, ok, "codes are case-sensitive")

	ok, err = VerifyCode(hash, "ab12c")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyCode_CorruptHash(t *testing.T) {
	_, err := VerifyCode("not-a-bcrypt-hash", "ab12cd")
	assert.Error(t, err)
}
