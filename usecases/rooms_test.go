package usecases

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRoomCode(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9A-F]{6}$`)

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		code, err := generateRoomCode()
		require.NoError(t, err)
		assert.Regexp(t, pattern, code)
		seen[code] = true
	}
	// 20 draws from 16^6 codes should not all collide.
	assert.Greater(t, len(seen), 1)
}
