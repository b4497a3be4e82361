package middleware

import (
	"net/http"

	"github.com/damianut/public-InterSynergy/internal/services"
	"github.com/damianut/public-InterSynergy/internal/session"
	"github.com/gin-gonic/gin"
)

// SessionAuth validates the session triple against the stored account.
// Session integrity failures are destructive: the cookies are cleared,
// the stored token is dropped and the client is sent back to the landing
// route.
func SessionAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		state := session.Read(c)
		user, ok := authService.ValidateSession(state)
		if !ok {
			if state.Email != "" {
				authService.InvalidateToken(state.Email)
			}
			session.Clear(c)
			c.JSON(http.StatusUnauthorized, gin.H{
				"flashes":  []services.Flash{{Kind: "error", Message: services.MsgSessionInvalid}},
				"redirect": "/main-page",
			})
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("session", state)
		c.Next()
	}
}

// RequireAdmin gates the admin panel on the session's destination
// template. It runs after SessionAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		state, exists := c.Get("session")
		if !exists || state.(session.State).Template != session.TemplateAdmin {
			c.JSON(http.StatusForbidden, gin.H{
				"flashes":  []services.Flash{{Kind: "error", Message: services.MsgAdmin403}},
				"redirect": "/main-page",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
