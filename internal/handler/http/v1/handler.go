package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/mcadavid/maternal_mortality_dashboard/internal/config"
	"github.com/mcadavid/maternal_mortality_dashboard/internal/models"
	"github.com/mcadavid/maternal_mortality_dashboard/internal/service"
)

type Handler struct {
	dashboardService service.DashboardService
	logger           *logrus.Logger
	validate         *validator.Validate
	cfg              *config.Config
}

func NewHandler(dashboardService service.DashboardService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		dashboardService: dashboardService,
		logger:           logger,
		validate:         validator.New(),
		cfg:              cfg,
	}
}

// @Summary Get the dashboard view for a selection
// @Description Recompute the five chart panels and the summary for the selected year and region. Internal refresh failures still return 200 with empty figures and a message, so the page never breaks.
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param year query int true "Selected year"
// @Param region query string false "Region name or 'all'" default(all)
// @Success 200 {object} DashboardResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Router /dashboard [get]
func (h *Handler) getDashboard(c *gin.Context) {
	var query DashboardQuery
	log := h.logger.WithField("method", "getDashboard")

	if err := c.ShouldBindQuery(&query); err != nil {
		log.WithError(err).Warn("Failed to bind query")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	if err := h.validate.Struct(query); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if query.Region == "" {
		query.Region = models.RegionAll
	}

	view := h.dashboardService.Refresh(c.Request.Context(), query.Year, query.Region)
	c.JSON(http.StatusOK, ModelToDashboardResponse(view))
}

// @Summary Get selector options
// @Description List the years and regions present in the dataset, with the default selection (most recent year, all regions).
// @Tags Dashboard
// @Accept json
// @Produce json
// @Success 200 {object} FiltersResponse
// @Router /dashboard/filters [get]
func (h *Handler) getFilters(c *gin.Context) {
	c.JSON(http.StatusOK, ModelToFiltersResponse(h.dashboardService.Filters()))
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
