package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mauro-rocha/portfolio-backend/internal/auth"
)

// RequireSession rejects requests when nobody is signed in. The remote
// store's access rules remain the real authorization boundary; this just
// keeps unauthenticated traffic from reaching the mutation paths.
func RequireSession(s *auth.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		if s == nil || !s.Authenticated() {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}

		if u := s.Current(); u != nil {
			c.Set("uid", u.UID)
			c.Set("email", u.Email)
		}
		c.Next()
	}
}
