package handler

import (
	"errors"
	"log"
	"net/http"

	"ingresos_gastos/internal/model"
	"ingresos_gastos/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler handles admin-facing user management requests.
type UserHandler struct {
	service service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(s service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		log.Printf("Error listing users: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener usuarios"})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Update(c *gin.Context) {
	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nombre y rol son requeridos"})
		return
	}

	user, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingUserFields):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Nombre y rol son requeridos"})
		case errors.Is(err, service.ErrInvalidRole):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rol inválido"})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Usuario no encontrado"})
		default:
			log.Printf("Error updating user: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al actualizar usuario"})
		}
		return
	}
	c.JSON(http.StatusOK, user)
}

// RegisterUserRoutes registers user management routes; all are ADMIN only.
func (h *UserHandler) RegisterUserRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	users := rg.Group("/users")
	users.Use(authMW)
	users.Use(adminMW)
	{
		users.GET("", h.List)
		users.PUT("/:id", h.Update)
	}
}
