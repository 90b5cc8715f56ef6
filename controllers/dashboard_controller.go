package controllers

import (
	"net/http"

	"github.com/faisal-gif/project-daily-log/services"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	Dash *services.DashboardService
}

func NewDashboardController(dash *services.DashboardService) *DashboardController {
	return &DashboardController{Dash: dash}
}

// GET /user/dashboard
func (dc *DashboardController) User(c *gin.Context) {
	userID := c.GetUint("userID")

	dashboard, err := dc.Dash.ForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// GET /admin/dashboard
func (dc *DashboardController) Admin(c *gin.Context) {
	dashboard, err := dc.Dash.ForAdmin(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
