package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mcadavid/maternal_mortality_dashboard/internal/dataset"
	"github.com/mcadavid/maternal_mortality_dashboard/internal/models"
	"github.com/mcadavid/maternal_mortality_dashboard/internal/observability"
)

// ViewCache is the contract for caching rendered views. Implementations may
// fail freely: every cache error degrades to recomputation.
type ViewCache interface {
	Get(ctx context.Context, year int, region string) (*models.DashboardView, error)
	Set(ctx context.Context, year int, region string, view *models.DashboardView) error
}

// DashboardService produces the dashboard view for a (year, region)
// selection. Refresh never fails: any internal error becomes a uniform
// degraded view with empty figures and a message.
type DashboardService interface {
	Refresh(ctx context.Context, year int, region string) *models.DashboardView
	Filters() *models.FilterOptions
}

type dashboardService struct {
	data    *dataset.Dataset
	cache   ViewCache // nil when caching is disabled
	logger  *logrus.Logger
	metrics *observability.Metrics
}

// NewDashboardService wires the service over the immutable loaded dataset.
// cache may be nil.
func NewDashboardService(data *dataset.Dataset, cache ViewCache, logger *logrus.Logger, metrics *observability.Metrics) DashboardService {
	return &dashboardService{
		data:    data,
		cache:   cache,
		logger:  logger,
		metrics: metrics,
	}
}

// Refresh recomputes all five panels and the summary for a selection. It is
// a pure function of (year, region, dataset); the recover boundary converts
// any internal failure into the degraded view instead of propagating it.
func (s *dashboardService) Refresh(ctx context.Context, year int, region string) (view *models.DashboardView) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "dashboard",
		"method":  "Refresh",
		"year":    year,
		"region":  region,
	})
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("Refresh failed, returning degraded view")
			s.metrics.Refreshes.WithLabelValues("degraded").Inc()
			view = degradedView(year, region, fmt.Sprintf("Error interno: %v", r))
		}
	}()

	if cached := s.cachedView(ctx, year, region, log); cached != nil {
		return cached
	}

	filtered := filterRecords(s.data.Records, region)
	slice := yearSlice(filtered, year)
	series := timeSeries(filtered)

	view = &models.DashboardView{
		Map:           buildMapFigure(s.data),
		TimeSeries:    buildTimeSeriesFigure(series),
		Distribution:  buildDistributionFigure(slice),
		RegionBoxplot: buildBoxplotFigure(filtered),
		Scatter:       buildScatterFigure(slice),
		Summary:       summarize(filtered, year, region),
	}

	s.metrics.Refreshes.WithLabelValues("success").Inc()
	s.metrics.RefreshDuration.Observe(time.Since(start).Seconds())
	log.WithField("filtered_records", len(filtered)).Debug("Refresh completed")

	s.storeView(ctx, year, region, view, log)
	return view
}

// Filters returns the selector options: all years and regions present in the
// dataset, defaulting to the most recent year and to all regions.
func (s *dashboardService) Filters() *models.FilterOptions {
	opts := &models.FilterOptions{
		Years:         s.data.Years,
		Regions:       s.data.Regions,
		DefaultRegion: models.RegionAll,
	}
	if len(s.data.Years) > 0 {
		opts.DefaultYear = s.data.Years[len(s.data.Years)-1]
	}
	return opts
}

func (s *dashboardService) cachedView(ctx context.Context, year int, region string, log *logrus.Entry) *models.DashboardView {
	if s.cache == nil {
		return nil
	}
	view, err := s.cache.Get(ctx, year, region)
	if err != nil {
		log.WithError(err).Warn("View cache lookup failed, recomputing")
		s.metrics.CacheLookups.WithLabelValues("error").Inc()
		return nil
	}
	if view == nil {
		s.metrics.CacheLookups.WithLabelValues("miss").Inc()
		return nil
	}
	s.metrics.CacheLookups.WithLabelValues("hit").Inc()
	return view
}

func (s *dashboardService) storeView(ctx context.Context, year int, region string, view *models.DashboardView, log *logrus.Entry) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, year, region, view); err != nil {
		log.WithError(err).Warn("Failed to store view in cache")
	}
}

// filterRecords applies the region filter: "all" selects everything, any
// other value selects exact region-name matches. An unknown region yields an
// empty set, not an error.
func filterRecords(records []models.Record, region string) []models.Record {
	if region == models.RegionAll {
		return records
	}
	var filtered []models.Record
	for _, r := range records {
		if r.RegionName == region {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// yearSlice restricts a record set to one year.
func yearSlice(records []models.Record, year int) []models.Record {
	var slice []models.Record
	for _, r := range records {
		if r.Year == year {
			slice = append(slice, r)
		}
	}
	return slice
}

// timeSeries sums cases and population per year over the filtered set and
// derives the yearly rate, ordered by year ascending.
func timeSeries(records []models.Record) []models.TimeSeriesPoint {
	byYear := make(map[int]*models.TimeSeriesPoint)
	for _, r := range records {
		p, ok := byYear[r.Year]
		if !ok {
			p = &models.TimeSeriesPoint{Year: r.Year}
			byYear[r.Year] = p
		}
		p.Cases += r.Cases
		p.Population += r.Population
	}

	points := make([]models.TimeSeriesPoint, 0, len(byYear))
	for _, p := range byYear {
		p.Rate = models.RatePer100k(p.Cases, p.Population)
		points = append(points, *p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Year < points[j].Year })
	return points
}

// summarize computes the filter-level statistics over the whole filtered
// set, not the year slice.
func summarize(filtered []models.Record, year int, region string) models.Summary {
	sum := models.Summary{Year: year, Region: region}
	munis := make(map[string]struct{})
	for _, r := range filtered {
		sum.TotalCases += r.Cases
		sum.TotalPopulation += r.Population
		if r.Cases > 0 {
			sum.AffectedCount++
		}
		if r.MunicipalityCode != "" {
			munis[r.MunicipalityCode] = struct{}{}
		}
	}
	sum.MunicipalityCount = len(munis)
	sum.AverageRate = models.RatePer100k(sum.TotalCases, sum.TotalPopulation)
	return sum
}

// degradedView is the uniform output for a failed refresh: five empty
// figures and a plain-text message, never a partially updated artifact.
func degradedView(year int, region, message string) *models.DashboardView {
	return &models.DashboardView{
		Map:           models.EmptyFigure(message),
		TimeSeries:    models.EmptyFigure(message),
		Distribution:  models.EmptyFigure(message),
		RegionBoxplot: models.EmptyFigure(message),
		Scatter:       models.EmptyFigure(message),
		Summary:       models.Summary{Year: year, Region: region},
		Message:       message,
	}
}
