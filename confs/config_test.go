package confs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServerAddr(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		t.Setenv("SERVER_ADDR", "")
		t.Setenv("PORT", "")
		assert.Equal(t, "0.0.0.0:5000", ServerAddr())
	})

	t.Run("port alone picks the bind port", func(t *testing.T) {
		t.Setenv("SERVER_ADDR", "")
		t.Setenv("PORT", "8080")
		assert.Equal(t, "0.0.0.0:8080", ServerAddr())
	})

	t.Run("explicit address wins over port", func(t *testing.T) {
		t.Setenv("SERVER_ADDR", "127.0.0.1:9000")
		t.Setenv("PORT", "8080")
		assert.Equal(t, "127.0.0.1:9000", ServerAddr())
	})
}

func TestJWTSecretFallback(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	assert.NotEmpty(t, JWTSecret())

	t.Setenv("JWT_SECRET", "configured")
	assert.Equal(t, []byte("configured"), JWTSecret())
}
