package service

import (
	"math"

	"github.com/mcadavid/maternal_mortality_dashboard/internal/dataset"
	"github.com/mcadavid/maternal_mortality_dashboard/internal/models"
)

// buildMapFigure renders the choropleth from the all-years municipality
// aggregates. The color domain is fixed by the dataset-wide 95th-percentile
// bound, so the map does not rescale as filters change; undefined rates draw
// as zero here, the one place the display substitutes zero for "no data".
//
// The map deliberately ignores the selected year: it has always shown the
// historical aggregate and downstream consumers expect that.
func buildMapFigure(ds *dataset.Dataset) *models.Figure {
	var (
		locations  []string
		z          []float64
		customData [][]any
	)
	for _, agg := range ds.Aggregates {
		if !ds.Boundaries.Empty() && !ds.Boundaries.Has(agg.MunicipalityCode) {
			continue
		}
		rate := 0.0
		if agg.Rate != nil {
			rate = *agg.Rate
		}
		locations = append(locations, agg.MunicipalityCode)
		z = append(z, rate)
		customData = append(customData, []any{agg.MunicipalityName, rate})
	}

	zmin := 0.0
	trace := models.Trace{
		Type:          "choroplethmapbox",
		GeoJSON:       ds.Boundaries.Collection,
		Locations:     locations,
		Z:             z,
		FeatureIDKey:  "id",
		ColorScale:    "Viridis",
		ZMin:          &zmin,
		Marker:        &models.Marker{Line: &models.Line{Width: 0.4, Color: "black"}},
		ColorBar:      &models.ColorBar{Title: "Tasa x100k"},
		HoverTemplate: "<b>%{customdata[0]}</b><br>Código: %{location}<br>Tasa: %{customdata[1]:.2f}<extra></extra>",
		CustomData:    customData,
	}
	if ds.RateScaleMax != nil && *ds.RateScaleMax > 0 {
		trace.ZMax = ds.RateScaleMax
	}

	return &models.Figure{
		Data: []models.Trace{trace},
		Layout: &models.Layout{
			Mapbox: &models.Mapbox{
				Style:  "open-street-map",
				Center: ds.Boundaries.Center,
				Zoom:   ds.Boundaries.Zoom,
			},
			Margin: &models.Margin{},
		},
	}
}

// buildTimeSeriesFigure renders the yearly rate line with the case-count
// bars on a secondary axis.
func buildTimeSeriesFigure(points []models.TimeSeriesPoint) *models.Figure {
	years := make([]any, len(points))
	rates := make([]*float64, len(points))
	cases := make([]*float64, len(points))
	for i, p := range points {
		years[i] = p.Year
		rates[i] = p.Rate
		c := float64(p.Cases)
		cases[i] = &c
	}

	return &models.Figure{
		Data: []models.Trace{
			{
				Type: "scatter",
				Mode: "lines+markers",
				Name: "Tasa x100k",
				X:    years,
				Y:    rates,
				Line: &models.Line{Color: "royalblue", Width: 2},
			},
			{
				Type:    "bar",
				Name:    "Casos",
				X:       years,
				Y:       cases,
				Marker:  &models.Marker{Color: "indianred"},
				Opacity: 0.6,
				YAxis:   "y2",
			},
		},
		Layout: &models.Layout{
			Title:  "Evolución anual de tasa y casos",
			XAxis:  &models.Axis{Title: "Año"},
			YAxis:  &models.Axis{Title: "Tasa por 100k"},
			YAxis2: &models.Axis{Title: "Casos", Overlaying: "y", Side: "right"},
			Legend: &models.Legend{Orientation: "h", Y: -0.2},
		},
	}
}

// buildDistributionFigure renders the histogram of defined rates across the
// selected year's municipalities. Undefined rates are omitted, not binned
// at zero.
func buildDistributionFigure(yearRecords []models.Record) *models.Figure {
	var rates []any
	for _, r := range yearRecords {
		if r.Rate != nil {
			rates = append(rates, *r.Rate)
		}
	}

	return &models.Figure{
		Data: []models.Trace{
			{
				Type:   "histogram",
				X:      rates,
				NBinsX: 20,
			},
		},
		Layout: &models.Layout{
			Title: "Distribución tasas (año seleccionado)",
			XAxis: &models.Axis{Title: "Tasa por 100k"},
			YAxis: &models.Axis{Title: "N° municipios"},
		},
	}
}

// buildBoxplotFigure renders per-region rate distributions over the whole
// filtered set, with the individual points alongside each box.
func buildBoxplotFigure(filtered []models.Record) *models.Figure {
	var (
		regions []any
		rates   []*float64
	)
	for _, r := range filtered {
		if r.Rate == nil {
			continue
		}
		regions = append(regions, r.RegionName)
		rates = append(rates, r.Rate)
	}

	return &models.Figure{
		Data: []models.Trace{
			{
				Type:      "box",
				X:         regions,
				Y:         rates,
				BoxPoints: "all",
			},
		},
		Layout: &models.Layout{
			Title: "Distribución por región",
			XAxis: &models.Axis{Title: "Región"},
			YAxis: &models.Axis{Title: "Tasa por 100k"},
		},
	}
}

// buildScatterFigure renders population against rate for the selected year,
// log-scaled population, marker area scaled by case count.
func buildScatterFigure(yearRecords []models.Record) *models.Figure {
	maxCases := 0
	for _, r := range yearRecords {
		if r.Rate != nil && r.Cases > maxCases {
			maxCases = r.Cases
		}
	}

	var (
		populations []any
		rates       []*float64
		names       []string
		sizes       []float64
	)
	for _, r := range yearRecords {
		if r.Rate == nil {
			continue
		}
		populations = append(populations, r.Population)
		rates = append(rates, r.Rate)
		names = append(names, r.MunicipalityName)
		sizes = append(sizes, markerSize(r.Cases, maxCases))
	}

	return &models.Figure{
		Data: []models.Trace{
			{
				Type:   "scatter",
				Mode:   "markers",
				X:      populations,
				Y:      rates,
				Text:   names,
				Marker: &models.Marker{Size: sizes},
			},
		},
		Layout: &models.Layout{
			Title: "Población vs Tasa (año seleccionado)",
			XAxis: &models.Axis{Title: "Población objetivo (log)", Type: "log"},
			YAxis: &models.Axis{Title: "Tasa por 100k"},
		},
	}
}

// markerSize maps a case count onto a bounded pixel diameter, area-
// proportional like plotly's own size scaling.
func markerSize(cases, maxCases int) float64 {
	const minPx, maxPx = 6.0, 24.0
	if maxCases <= 0 || cases <= 0 {
		return minPx
	}
	return minPx + (maxPx-minPx)*math.Sqrt(float64(cases)/float64(maxCases))
}
