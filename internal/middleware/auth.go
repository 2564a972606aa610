package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"accountd/internal/services"
)

const callerIDKey = "caller_id"

// RequireAuth extracts the access token from the Authorization header or the
// AccessToken cookie, verifies it and stores the token's user id in the
// request context. Only the info route is guarded; every other operation
// authenticates through its own body-level checks.
func RequireAuth(auth services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			if cookie, err := c.Cookie("AccessToken"); err == nil {
				tokenStr = cookie
			}
		}
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid access token"})
			return
		}

		userID, err := auth.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid access token"})
			return
		}

		c.Set(callerIDKey, userID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// CallerID reports the user id the verified token was issued for.
func CallerID(c *gin.Context) (int, bool) {
	v, ok := c.Get(callerIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int)
	return id, ok
}
