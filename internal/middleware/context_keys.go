package middleware

import (
	"context"

	"github.com/acctpro/accounting_pro_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// contextKey is a private key type preventing collisions in context values.
type contextKey string

const (
	loggerKey   = contextKey("logger")
	userIDKey   = contextKey("userID")
	userRoleKey = contextKey("userRole")
)

// GetActorFromContext retrieves the authenticated actor (user ID and role)
// placed in the Gin context by the auth middleware.
func GetActorFromContext(c *gin.Context) (domain.Actor, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		return domain.Actor{}, false
	}
	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		return domain.Actor{}, false
	}

	roleVal, exists := c.Get(string(userRoleKey))
	if !exists {
		return domain.Actor{}, false
	}
	role, ok := roleVal.(domain.UserRole)
	if !ok || !role.Valid() {
		return domain.Actor{}, false
	}

	return domain.Actor{UserID: userID, Role: role}, true
}

// setActor stores the actor on both the gin context and the request context so
// service-layer code reading plain context.Context can also reach it.
func setActor(c *gin.Context, actor domain.Actor) {
	c.Set(string(userIDKey), actor.UserID)
	c.Set(string(userRoleKey), actor.Role)
	ctx := context.WithValue(c.Request.Context(), userIDKey, actor.UserID)
	ctx = context.WithValue(ctx, userRoleKey, actor.Role)
	c.Request = c.Request.WithContext(ctx)
}
