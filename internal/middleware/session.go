package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionHeader     = "X-Session-ID"
	sessionContextKey = "session_id"
)

// Session propagates the browsing-session identifier used by the selection
// tracker. Clients without one are issued a fresh id in the response header.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(sessionHeader)
		if sessionID == "" {
			sessionID = uuid.NewString()
		}

		c.Set(sessionContextKey, sessionID)
		c.Writer.Header().Set(sessionHeader, sessionID)

		c.Next()
	}
}

// SessionID returns the session id stored in the Gin context.
func SessionID(c *gin.Context) string {
	if v, exists := c.Get(sessionContextKey); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
