package models

// UnknownRegion is the sentinel assigned to records whose source row carries
// no region name.
const UnknownRegion = "Sin región"

// RegionAll is the region filter value that selects every record.
const RegionAll = "all"

// Record is one (municipality, year) observation from the mortality table.
type Record struct {
	Year             int      `json:"year"`
	MunicipalityCode string   `json:"municipality_code"` // 5-char zero-padded, "" when no digits could be extracted
	MunicipalityName string   `json:"municipality_name"`
	RegionName       string   `json:"region_name"`
	Cases            int      `json:"cases"`
	Population       int      `json:"population"`
	Rate             *float64 `json:"rate_per_100k"` // nil iff Population == 0
}

// MunicipalityAggregate sums a municipality's records across all years.
// It feeds the map's fixed color domain only.
type MunicipalityAggregate struct {
	MunicipalityCode string   `json:"municipality_code"`
	MunicipalityName string   `json:"municipality_name"` // first seen
	RegionName       string   `json:"region_name"`       // first seen
	Cases            int      `json:"cases"`
	Population       int      `json:"population"`
	Rate             *float64 `json:"rate_per_100k"` // nil iff Population == 0
}

// TimeSeriesPoint is one year of the filtered set, cases and population
// summed across municipalities.
type TimeSeriesPoint struct {
	Year       int      `json:"year"`
	Cases      int      `json:"cases"`
	Population int      `json:"population"`
	Rate       *float64 `json:"rate_per_100k"`
}

// Summary holds the filter-level statistics shown under the charts.
// AffectedCount counts rows with at least one case, MunicipalityCount counts
// distinct municipality codes; both are computed over the whole filtered set,
// not the selected year.
type Summary struct {
	TotalCases        int      `json:"total_cases"`
	TotalPopulation   int      `json:"total_population"`
	AverageRate       *float64 `json:"average_rate_per_100k"`
	AffectedCount     int      `json:"affected_count"`
	MunicipalityCount int      `json:"municipality_count"`
	Year              int      `json:"year"`
	Region            string   `json:"region"`
}

// RatePer100k derives the incidence rate, nil when the population is zero.
// A nil rate means "no data" and must never be read as zero.
func RatePer100k(cases, population int) *float64 {
	if population <= 0 {
		return nil
	}
	r := float64(cases) / float64(population) * 100000
	return &r
}
