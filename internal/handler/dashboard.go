// Package handler is the staff-facing dashboard surface: a small local HTTP
// API over the alert store for reviewing and resolving safety alerts.
package handler

import (
	"net/http"
	"time"

	"melio/internal/export"
	"melio/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	alerts *service.AlertService
}

func NewDashboardHandler(alerts *service.AlertService) *DashboardHandler {
	return &DashboardHandler{alerts: alerts}
}

// Router builds the dashboard engine.
func (h *DashboardHandler) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	api := r.Group("/api")
	api.GET("/alerts", h.ListAlerts)
	api.POST("/alerts/:id/resolve", h.ResolveAlert)
	api.GET("/stats", h.GetStats)
	api.GET("/export", h.Export)
	return r
}

func (h *DashboardHandler) ListAlerts(c *gin.Context) {
	school := c.Query("school")
	var alerts any
	if c.Query("unresolved") == "true" {
		alerts = h.alerts.Unresolved(school)
	} else {
		alerts = h.alerts.All(school)
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}

func (h *DashboardHandler) ResolveAlert(c *gin.Context) {
	id := c.Param("id")
	if !h.alerts.Resolve(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "alert not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"resolved": id})
}

func (h *DashboardHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.alerts.Stats(c.Query("school")))
}

// Export streams the alert workbook for offline staff review.
func (h *DashboardHandler) Export(c *gin.Context) {
	school := c.Query("school")
	wb, err := export.AlertWorkbook(h.alerts.All(school), h.alerts.Stats(school))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer wb.Close()

	name := "melio-alerts-" + time.Now().Format("2006-01-02") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := wb.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}
