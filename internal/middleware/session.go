package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mstanchev/vaxtrack/internal/service"
)

const (
	ContextUserIDKey  = "user_id"
	SessionCookieName = "vaxtrack_session"
)

// SessionAuth gates the server-rendered pages. A missing or expired
// session redirects to the login form instead of rendering data.
func SessionAuth(sessions *service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		userID, err := sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}
