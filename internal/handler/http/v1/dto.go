package v1

import (
	"github.com/mcadavid/maternal_mortality_dashboard/internal/models"
)

// DashboardQuery holds the selector state sent by the dashboard page.
// @Description Dashboard filter selection
type DashboardQuery struct {
	Year   int    `form:"year" validate:"required"`
	Region string `form:"region"`
}

// DashboardResponse carries the five figure documents plus the summary.
// @Description Dashboard view: five plotly figures and a text summary
type DashboardResponse struct {
	Map           *models.Figure  `json:"map"`
	TimeSeries    *models.Figure  `json:"time_series"`
	Distribution  *models.Figure  `json:"distribution"`
	RegionBoxplot *models.Figure  `json:"region_boxplot"`
	Scatter       *models.Figure  `json:"scatter"`
	Summary       SummaryResponse `json:"summary"`
	Message       string          `json:"message,omitempty"`
}

// SummaryResponse is the statistics panel under the charts.
// @Description Filter-level summary statistics
type SummaryResponse struct {
	TotalCases        int      `json:"total_cases"`
	TotalPopulation   int      `json:"total_population"`
	AverageRate       *float64 `json:"average_rate_per_100k"`
	AffectedCount     int      `json:"affected_count"`
	MunicipalityCount int      `json:"municipality_count"`
	Year              int      `json:"year"`
	Region            string   `json:"region"`
	Lines             []string `json:"lines"`
}

// FiltersResponse drives the year and region selectors.
// @Description Selector options and defaults
type FiltersResponse struct {
	Years         []int    `json:"years"`
	Regions       []string `json:"regions"`
	DefaultYear   int      `json:"default_year"`
	DefaultRegion string   `json:"default_region"`
}
