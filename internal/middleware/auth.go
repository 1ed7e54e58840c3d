package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/servibook/servibook/internal/domain"
	"github.com/servibook/servibook/internal/response"
	"github.com/servibook/servibook/internal/service"
)

const (
	// ContextUserID is the context key for the authenticated user's ID
	ContextUserID = "user_id"
	// ContextUserRole is the context key for the authenticated user's role
	ContextUserRole = "user_role"
	// ContextToken is the context key for the raw bearer token
	ContextToken = "access_token"
)

// Auth validates the bearer token and stores the claims in the context
func Auth(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.Unauthorized(c, "invalid authorization header")
			c.Abort()
			return
		}

		claims, err := auth.ValidateToken(c.Request.Context(), token)
		if err != nil {
			response.Unauthorized(c, err.Error())
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, claims.Role)
		c.Set(ContextToken, token)
		c.Next()
	}
}

// RequireAdmin rejects requests from non-administrative users. Must run
// after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextUserRole)
		if !exists {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}

		if r, ok := role.(domain.Role); !ok || !r.IsAdministrative() {
			response.Forbidden(c, "administrative role required")
			c.Abort()
			return
		}

		c.Next()
	}
}

// UserID returns the authenticated user's ID from the context
func UserID(c *gin.Context) string {
	if id, exists := c.Get(ContextUserID); exists {
		if userID, ok := id.(string); ok {
			return userID
		}
	}
	return ""
}

// Token returns the raw bearer token from the context
func Token(c *gin.Context) string {
	if t, exists := c.Get(ContextToken); exists {
		if token, ok := t.(string); ok {
			return token
		}
	}
	return ""
}
