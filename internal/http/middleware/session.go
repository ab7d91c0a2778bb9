// README: Session cookie middleware; issues a token when the client has none.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// CookieName is the session cookie issued to browsers.
	CookieName = "tripwise_session"
	// TokenKey is where the resolved token lands in the gin context.
	TokenKey = "session_token"
)

// Session resolves the client's session token, minting one on first contact.
// maxAge is the cookie lifetime in seconds and should track the session TTL.
func Session(maxAge int) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CookieName)
		if err != nil || token == "" {
			token = uuid.NewString()
			c.SetCookie(CookieName, token, maxAge, "/", "", false, true)
		}
		c.Set(TokenKey, token)
		c.Next()
	}
}

// Token returns the session token placed by Session.
func Token(c *gin.Context) string {
	return c.GetString(TokenKey)
}
