package handler

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"ingresos_gastos/internal/service"

	"github.com/gin-gonic/gin"
)

// ReportHandler handles aggregate report requests.
type ReportHandler struct {
	service service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

func (h *ReportHandler) Balance(c *gin.Context) {
	report, err := h.service.Balance(c.Request.Context())
	if err != nil {
		log.Printf("Error computing balance: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener balance"})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) ExportBalanceCSV(c *gin.Context) {
	csvContent, err := h.service.ExportBalanceCSV(c.Request.Context())
	if err != nil {
		log.Printf("Error exporting balance to CSV: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al exportar reporte"})
		return
	}

	fileName := fmt.Sprintf("reporte-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csvContent))
}

// RegisterReportRoutes registers report routes; all are ADMIN only.
func (h *ReportHandler) RegisterReportRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	reports := rg.Group("/reports")
	reports.Use(authMW)
	reports.Use(adminMW)
	{
		reports.GET("/balance", h.Balance)
		reports.GET("/balance/export/csv", h.ExportBalanceCSV)
	}
}
