package middleware

import (
	"context"
	"net/http"

	"ingresos_gastos/internal/model"

	"github.com/gin-gonic/gin"
)

const (
	// SessionCookieName is the cookie carrying the opaque session token.
	SessionCookieName = "session_token"

	// IdentityKey is the gin context key for the resolved identity.
	IdentityKey = "authIdentity"
)

// IdentityResolver validates a session token against the identity store.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (*model.Identity, error)
}

// SessionAuthMiddleware resolves the request's session cookie and attaches
// the typed identity to the context. Requests without a valid session are
// rejected with 401 before any handler or store is reached.
func SessionAuthMiddleware(resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No autenticado"})
			return
		}

		identity, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No autenticado"})
			return
		}

		c.Set(IdentityKey, identity)
		c.Next()
	}
}

// IdentityFromContext returns the identity attached by SessionAuthMiddleware.
func IdentityFromContext(c *gin.Context) (*model.Identity, bool) {
	val, exists := c.Get(IdentityKey)
	if !exists {
		return nil, false
	}
	identity, ok := val.(*model.Identity)
	return identity, ok
}
