package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

const InviteCodeHeader = "X-Invite-Code"

// InviteCodeMiddleware gates signup behind a shared code. An empty code leaves signup open.
func InviteCodeMiddleware(inviteCode string) gin.HandlerFunc {
	if inviteCode == "" {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		clientKey := c.GetHeader(InviteCodeHeader)

		if subtle.ConstantTimeCompare([]byte(clientKey), []byte(inviteCode)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid invite code"})
			return
		}
		c.Next()
	}
}
