package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/libraryhub/libraryhub/internal/entities"
)

// Context keys for authenticated user data
const (
	ContextKeyUserID = "auth_user_id"
	ContextKeyRole   = "auth_role"
)

// Middleware authenticates requests via Bearer access tokens.
type Middleware struct {
	service *Service
	tokens  *TokenIssuer
}

// NewMiddleware creates a new authentication middleware.
func NewMiddleware(service *Service, tokens *TokenIssuer) *Middleware {
	return &Middleware{service: service, tokens: tokens}
}

// RequireUser returns a handler that rejects requests without a valid
// access token for an active user.
func (m *Middleware) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" {
			abortUnauthorized(c, "authentication required")
			return
		}

		claims, err := m.tokens.Validate(token, TokenTypeAccess)
		if err != nil {
			if errors.Is(err, ErrTokenExpired) {
				abortUnauthorized(c, "token has expired")
				return
			}
			abortUnauthorized(c, "could not validate credentials")
			return
		}

		user, err := m.service.GetActiveByEmail(claims.Subject)
		if err != nil {
			abortUnauthorized(c, "could not validate credentials")
			return
		}

		c.Set(ContextKeyUserID, user.ID)
		c.Set(ContextKeyRole, user.Role)
		c.Next()
	}
}

// RequireAdmin returns a handler that additionally rejects non-admins.
// Must run after RequireUser.
func (m *Middleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetRole(c) != entities.UserRoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

// GetUserID extracts the authenticated user's ID from the Gin context.
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextKeyUserID); exists {
		if userID, ok := id.(uint); ok {
			return userID
		}
	}
	return 0
}

// GetRole extracts the authenticated user's role from the Gin context.
func GetRole(c *gin.Context) entities.UserRole {
	if role, exists := c.Get(ContextKeyRole); exists {
		if r, ok := role.(entities.UserRole); ok {
			return r
		}
	}
	return ""
}

func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func abortUnauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}
