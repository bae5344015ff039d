package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all API v1 routes.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	dashboard := api.Group("/dashboard")
	{
		dashboard.GET("", h.getDashboard)
		dashboard.GET("/filters", h.getFilters)
	}

	// Health-check route
	api.GET("/system/health", h.healthCheck)
}
