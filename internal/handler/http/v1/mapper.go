package v1

import (
	"fmt"

	"github.com/mcadavid/maternal_mortality_dashboard/internal/models"
)

// ModelToDashboardResponse converts a refreshed view into the response DTO,
// rendering the summary text lines shown under the charts.
func ModelToDashboardResponse(view *models.DashboardView) *DashboardResponse {
	return &DashboardResponse{
		Map:           view.Map,
		TimeSeries:    view.TimeSeries,
		Distribution:  view.Distribution,
		RegionBoxplot: view.RegionBoxplot,
		Scatter:       view.Scatter,
		Summary:       modelToSummaryResponse(view.Summary),
		Message:       view.Message,
	}
}

// ModelToFiltersResponse converts the selector options into the response DTO.
func ModelToFiltersResponse(opts *models.FilterOptions) *FiltersResponse {
	return &FiltersResponse{
		Years:         opts.Years,
		Regions:       opts.Regions,
		DefaultYear:   opts.DefaultYear,
		DefaultRegion: opts.DefaultRegion,
	}
}

func modelToSummaryResponse(sum models.Summary) SummaryResponse {
	rateLine := "Tasa promedio: N/A"
	if sum.AverageRate != nil {
		rateLine = fmt.Sprintf("Tasa promedio (filtro): %.2f x100k", *sum.AverageRate)
	}

	regionLabel := sum.Region
	if sum.Region == models.RegionAll {
		regionLabel = "Todas"
	}

	return SummaryResponse{
		TotalCases:        sum.TotalCases,
		TotalPopulation:   sum.TotalPopulation,
		AverageRate:       sum.AverageRate,
		AffectedCount:     sum.AffectedCount,
		MunicipalityCount: sum.MunicipalityCount,
		Year:              sum.Year,
		Region:            sum.Region,
		Lines: []string{
			fmt.Sprintf("Total casos (filtro): %d", sum.TotalCases),
			rateLine,
			fmt.Sprintf("Municipios afectados: %d/%d", sum.AffectedCount, sum.MunicipalityCount),
			fmt.Sprintf("Año: %d | Región: %s", sum.Year, regionLabel),
		},
	}
}
