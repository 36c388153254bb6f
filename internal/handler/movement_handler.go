package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"ingresos_gastos/internal/middleware"
	"ingresos_gastos/internal/model"
	"ingresos_gastos/internal/service"

	"github.com/gin-gonic/gin"
)

// MovementHandler handles movement related requests.
type MovementHandler struct {
	service service.MovementService
}

// NewMovementHandler creates a new MovementHandler.
func NewMovementHandler(s service.MovementService) *MovementHandler {
	return &MovementHandler{service: s}
}

func (h *MovementHandler) List(c *gin.Context) {
	movements, err := h.service.List(c.Request.Context())
	if err != nil {
		log.Printf("Error listing movements: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener movimientos"})
		return
	}
	c.JSON(http.StatusOK, movements)
}

func (h *MovementHandler) Create(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No autenticado"})
		return
	}

	var req model.MovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Todos los campos son requeridos"})
		return
	}

	movement, err := h.service.Create(c.Request.Context(), identity.ID, req)
	if err != nil {
		h.writeMovementError(c, err, "Error al crear movimiento")
		return
	}
	c.JSON(http.StatusCreated, movement)
}

func (h *MovementHandler) Update(c *gin.Context) {
	var req model.MovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Todos los campos son requeridos"})
		return
	}

	movement, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeMovementError(c, err, "Error al actualizar movimiento")
		return
	}
	c.JSON(http.StatusOK, movement)
}

func (h *MovementHandler) Delete(c *gin.Context) {
	err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeMovementError(c, err, "Error al eliminar movimiento")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Movimiento eliminado"})
}

func (h *MovementHandler) ExportCSV(c *gin.Context) {
	csvContent, err := h.service.ExportCSV(c.Request.Context())
	if err != nil {
		log.Printf("Error exporting movements to CSV: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al exportar movimientos"})
		return
	}

	fileName := fmt.Sprintf("movimientos-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csvContent))
}

// writeMovementError maps service errors to JSON responses. Validation
// failures are 400, a missing movement is 404, anything else is a generic
// 500 with no detail leak.
func (h *MovementHandler) writeMovementError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Todos los campos son requeridos"})
	case errors.Is(err, service.ErrInvalidMovementType):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tipo de movimiento inválido"})
	case errors.Is(err, service.ErrInvalidDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fecha inválida"})
	case errors.Is(err, service.ErrMovementNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Movimiento no encontrado"})
	default:
		log.Printf("Movement handler error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// RegisterMovementRoutes registers movement routes. Reads require any
// authenticated user; writes and the export require ADMIN.
func (h *MovementHandler) RegisterMovementRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	movements := rg.Group("/movements")
	movements.Use(authMW)
	{
		movements.GET("", h.List)
		movements.POST("", adminMW, h.Create)
		movements.PUT("/:id", adminMW, h.Update)
		movements.DELETE("/:id", adminMW, h.Delete)
		movements.GET("/export/csv", adminMW, h.ExportCSV)
	}
}
