package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/mcadavid/maternal_mortality_dashboard/internal/models"
)

// Column names expected in the mortality CSV.
const (
	colYear         = "Año"
	colCases        = "NumeroCasos"
	colPopulation   = "NumeroPoblacionObjetivo"
	colMunicipality = "CodigoMunicipio"
	colName         = "NombreMunicipio"
	colRegion       = "NombreRegion"
)

// digitRunRe extracts the first run of digits from a raw municipality code
// field, e.g. "CO-05001" -> "05001", "5001.0" -> "5001".
var digitRunRe = regexp.MustCompile(`\d+`)

// Dataset is the immutable process-wide state built once at startup and
// shared by reference across all concurrent refreshes.
type Dataset struct {
	Records    []models.Record
	Aggregates []models.MunicipalityAggregate // sorted by municipality code
	Years      []int                          // sorted ascending
	Regions    []string                       // sorted, includes the unknown-region sentinel when present

	// RateScaleMax is the 95th percentile of defined aggregate rates, the
	// fixed upper bound of the map color scale. nil when no rate is defined.
	RateScaleMax *float64

	Boundaries *BoundaryIndex
}

// Load reads the mortality CSV and the boundary GeoJSON and precomputes
// every derived structure the dashboard needs. A missing or unreadable CSV
// is an error; a missing boundary file degrades to an empty boundary index.
func Load(csvPath, geojsonPath string, log *logrus.Logger) (*Dataset, error) {
	records, err := loadRecords(csvPath)
	if err != nil {
		return nil, fmt.Errorf("dataset: load mortality table: %w", err)
	}
	log.WithField("records", len(records)).Info("Mortality table loaded")

	boundaries, err := loadBoundaries(geojsonPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.WithField("path", geojsonPath).Warn("Boundary file missing, map will render without shapes")
			boundaries = emptyBoundaryIndex()
		} else {
			return nil, fmt.Errorf("dataset: load boundaries: %w", err)
		}
	} else {
		log.WithField("shapes", len(boundaries.Codes)).Info("Boundary shapes loaded")
	}

	ds := &Dataset{
		Records:    records,
		Aggregates: aggregateByMunicipality(records),
		Years:      distinctYears(records),
		Regions:    distinctRegions(records),
		Boundaries: boundaries,
	}
	ds.RateScaleMax = rateScaleMax(ds.Aggregates)
	return ds, nil
}

// loadRecords parses the CSV into records, coercing dirty fields instead of
// failing: non-numeric counts become 0, a missing region becomes the
// unknown-region sentinel, a code without digits stays empty. Rows whose
// year cannot be parsed are skipped.
func loadRecords(path string) ([]models.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	if _, ok := idx[colYear]; !ok {
		return nil, fmt.Errorf("column %q not found in header", colYear)
	}

	var records []models.Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		year, ok := parseIntField(field(row, idx, colYear))
		if !ok {
			continue
		}

		cases := parseIntOrZero(field(row, idx, colCases))
		population := parseIntOrZero(field(row, idx, colPopulation))

		region := strings.TrimSpace(field(row, idx, colRegion))
		if region == "" {
			region = models.UnknownRegion
		}

		records = append(records, models.Record{
			Year:             year,
			MunicipalityCode: NormalizeCode(field(row, idx, colMunicipality)),
			MunicipalityName: strings.TrimSpace(field(row, idx, colName)),
			RegionName:       region,
			Cases:            cases,
			Population:       population,
			Rate:             models.RatePer100k(cases, population),
		})
	}
	return records, nil
}

// NormalizeCode extracts the first digit run from a raw municipality code
// field and left-pads it with zeros to 5 characters. Returns "" when the
// field contains no digits; such records cannot be matched to a shape.
func NormalizeCode(raw string) string {
	digits := digitRunRe.FindString(raw)
	if digits == "" {
		return ""
	}
	if len(digits) < 5 {
		digits = strings.Repeat("0", 5-len(digits)) + digits
	}
	return digits
}

// aggregateByMunicipality sums cases and population per municipality across
// all years, keeping the first-seen name and region. Records without a
// normalized code are excluded.
func aggregateByMunicipality(records []models.Record) []models.MunicipalityAggregate {
	byCode := make(map[string]*models.MunicipalityAggregate)
	for _, r := range records {
		if r.MunicipalityCode == "" {
			continue
		}
		agg, ok := byCode[r.MunicipalityCode]
		if !ok {
			agg = &models.MunicipalityAggregate{
				MunicipalityCode: r.MunicipalityCode,
				MunicipalityName: r.MunicipalityName,
				RegionName:       r.RegionName,
			}
			byCode[r.MunicipalityCode] = agg
		}
		agg.Cases += r.Cases
		agg.Population += r.Population
	}

	aggs := make([]models.MunicipalityAggregate, 0, len(byCode))
	for _, agg := range byCode {
		agg.Rate = models.RatePer100k(agg.Cases, agg.Population)
		aggs = append(aggs, *agg)
	}
	sort.Slice(aggs, func(i, j int) bool {
		return aggs[i].MunicipalityCode < aggs[j].MunicipalityCode
	})
	return aggs
}

// rateScaleMax returns the 95th percentile of defined, finite aggregate
// rates, or nil when none exist.
func rateScaleMax(aggs []models.MunicipalityAggregate) *float64 {
	var rates []float64
	for _, agg := range aggs {
		if agg.Rate != nil && !math.IsInf(*agg.Rate, 0) && !math.IsNaN(*agg.Rate) {
			rates = append(rates, *agg.Rate)
		}
	}
	if len(rates) == 0 {
		return nil
	}
	sort.Float64s(rates)
	p95 := stat.Quantile(0.95, stat.Empirical, rates, nil)
	return &p95
}

func distinctYears(records []models.Record) []int {
	seen := make(map[int]struct{})
	for _, r := range records {
		seen[r.Year] = struct{}{}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

func distinctRegions(records []models.Record) []string {
	seen := make(map[string]struct{})
	for _, r := range records {
		seen[r.RegionName] = struct{}{}
	}
	regions := make([]string, 0, len(seen))
	for name := range seen {
		regions = append(regions, name)
	}
	sort.Strings(regions)
	return regions
}

// field returns the named column of a row, or "" when the column is missing
// or the row is short.
func field(row []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// parseIntField parses a numeric field, tolerating surrounding whitespace
// and a float-formatted integer ("2020.0").
func parseIntField(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == math.Trunc(f) {
		return int(f), true
	}
	return 0, false
}

// parseIntOrZero coerces a count field, returning 0 for missing,
// unparseable, or negative values. Dirty data is not an error.
func parseIntOrZero(s string) int {
	v, ok := parseIntField(s)
	if !ok || v < 0 {
		return 0
	}
	return v
}
