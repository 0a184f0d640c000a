package auth

import (
	"net/http"
	"strings"
)

const AccessTokenCookie = "access_token"

// NormalizeToken accepts what a user may paste from a browser session: a
// bare token, an Authorization header value, or a Cookie header carrying
// access_token.
func NormalizeToken(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "Cookie: ")

	// 1️⃣ Cookie (preferred)
	if strings.Contains(raw, AccessTokenCookie+"=") {
		if cookies, err := http.ParseCookie(raw); err == nil {
			for _, c := range cookies {
				if c.Name == AccessTokenCookie && c.Value != "" {
					return c.Value
				}
			}
		}
	}

	// 2️⃣ Authorization header (fallback)
	raw = strings.TrimPrefix(raw, "Authorization: ")
	if strings.HasPrefix(raw, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))
	}

	return raw
}
