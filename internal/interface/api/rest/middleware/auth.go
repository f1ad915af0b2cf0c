package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docmanager-api/internal/domain/user"
	"docmanager-api/internal/infrastructure/jwt"
)

const CtxIdentity = "identity"

func AuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "missing Authorization header"},
			)
			return
		}

		scheme, tokenStr, ok := strings.Cut(authHeader, " ")
		tokenStr = strings.TrimSpace(tokenStr)
		if !ok || !strings.EqualFold(scheme, "Bearer") || tokenStr == "" {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "invalid token format"},
			)
			return
		}

		claims, err := jwtService.ValidateToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "invalid token"},
			)
			return
		}
		id, err := uuid.Parse(claims.UserID)
		if err != nil || !user.Role(claims.Role).Valid() {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "invalid token"},
			)
			return
		}

		c.Set(CtxIdentity, user.Identity{
			ID:       id,
			Username: claims.Username,
			Role:     user.Role(claims.Role),
		})

		c.Next()
	}
}

// RequireRole must run after AuthMiddleware.
func RequireRole(role user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "missing Authorization header"},
			)
			return
		}
		if err := id.Require(role); err != nil {
			c.AbortWithStatusJSON(
				http.StatusForbidden,
				gin.H{"error": err.Error()},
			)
			return
		}

		c.Next()
	}
}

func IdentityFrom(c *gin.Context) (user.Identity, bool) {
	v, ok := c.Get(CtxIdentity)
	if !ok {
		return user.Identity{}, false
	}
	id, ok := v.(user.Identity)
	return id, ok
}
