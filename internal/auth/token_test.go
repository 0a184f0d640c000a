package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeToken(t *testing.T) {
	t.Run("Bare token", func(t *testing.T) {
		assert.Equal(t, "abc.def.ghi", NormalizeToken("  abc.def.ghi \n"))
	})

	t.Run("Cookie Preferred", func(t *testing.T) {
		token := NormalizeToken("theme=dark; access_token=cookie_token; lang=en")
		assert.Equal(t, "cookie_token", token)
	})

	t.Run("Cookie header line", func(t *testing.T) {
		assert.Equal(t, "cookie_token", NormalizeToken("Cookie: access_token=cookie_token"))
	})

	t.Run("Header Fallback", func(t *testing.T) {
		assert.Equal(t, "header_token", NormalizeToken("Bearer header_token"))
		assert.Equal(t, "header_token", NormalizeToken("Authorization: Bearer header_token"))
	})

	t.Run("Empty Cookie Falls Through", func(t *testing.T) {
		assert.Equal(t, "access_token=", NormalizeToken("access_token="))
	})

	t.Run("No Token", func(t *testing.T) {
		assert.Empty(t, NormalizeToken("   "))
	})
}
