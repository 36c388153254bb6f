package middleware

import (
	"net/http"

	"ingresos_gastos/internal/model"

	"github.com/gin-gonic/gin"
)

// RoleMiddleware rejects requests whose identity does not carry one of the
// allowed roles. It must run after SessionAuthMiddleware.
func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No autenticado"})
			return
		}

		for _, role := range allowedRoles {
			if identity.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Acceso denegado. Se requiere rol de administrador."})
	}
}

// AdminMiddleware restricts a route to ADMIN identities.
func AdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware(model.RoleAdmin)
}
