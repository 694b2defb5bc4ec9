package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/peopledesk/peopledesk/internal/services"
	"github.com/peopledesk/peopledesk/pkg/response"
	"gorm.io/gorm"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{dashboardService: services.NewDashboardService(db)}
}

// GetStats returns headline counts and the review stage breakdown
// GET /api/dashboard/stats
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.GetStats()
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, stats)
}
