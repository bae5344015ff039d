package dataset

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcadavid/maternal_mortality_dashboard/internal/models"
)

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(&bytes.Buffer{})
	return log
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const testCSV = `Año,NumeroCasos,NumeroPoblacionObjetivo,CodigoMunicipio,NombreMunicipio,NombreRegion
2020,2,100000,05001,Medellín,Valle de Aburrá
2020,0,0,05002,Abejorral,Oriente
2021,1,50000,CO-05001,Medellín,Valle de Aburrá
2021,abc,xyz,05002,Abejorral,Oriente
2020,3,60000,sin-codigo,Desconocido,
`

const testGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "id": 5001, "properties": {"NombreMunicipio": "Medellín"},
     "geometry": {"type": "Polygon", "coordinates": [[[-76,6],[-75,6],[-75,7],[-76,7],[-76,6]]]}},
    {"type": "Feature", "properties": {"CodigoMunicipio": "5002"},
     "geometry": {"type": "Polygon", "coordinates": [[[-75,6],[-74,6],[-74,7],[-75,7],[-75,6]]]}}
  ]
}`

func TestLoad_Success(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeFile(t, dir, "mortalidad.csv", testCSV)
	geoPath := writeFile(t, dir, "munis.geojson", testGeoJSON)

	ds, err := Load(csvPath, geoPath, newTestLogger())
	require.NoError(t, err)

	require.Len(t, ds.Records, 5)

	// rate defined iff population > 0
	first := ds.Records[0]
	require.NotNil(t, first.Rate)
	assert.InDelta(t, 2.0, *first.Rate, 1e-9)
	assert.Nil(t, ds.Records[1].Rate)

	// dirty code field still normalizes, codeless row stays unmatchable
	assert.Equal(t, "05001", ds.Records[2].MunicipalityCode)
	assert.Equal(t, "", ds.Records[4].MunicipalityCode)

	// dirty counts coerce to zero, missing region gets the sentinel
	assert.Equal(t, 0, ds.Records[3].Cases)
	assert.Equal(t, 0, ds.Records[3].Population)
	assert.Equal(t, models.UnknownRegion, ds.Records[4].RegionName)

	assert.Equal(t, []int{2020, 2021}, ds.Years)
	assert.Equal(t, []string{"Oriente", models.UnknownRegion, "Valle de Aburrá"}, ds.Regions)

	// aggregates exclude the codeless record and sum across years
	require.Len(t, ds.Aggregates, 2)
	medellin := ds.Aggregates[0]
	assert.Equal(t, "05001", medellin.MunicipalityCode)
	assert.Equal(t, 3, medellin.Cases)
	assert.Equal(t, 150000, medellin.Population)
	require.NotNil(t, medellin.Rate)
	assert.InDelta(t, 2.0, *medellin.Rate, 1e-9)
	assert.Nil(t, ds.Aggregates[1].Rate) // zero population across all years

	require.NotNil(t, ds.RateScaleMax)

	// boundary ids normalize from the numeric id and the property bag
	assert.True(t, ds.Boundaries.Has("05001"))
	assert.True(t, ds.Boundaries.Has("05002"))
	assert.False(t, ds.Boundaries.Empty())

	// map center is the bounds midpoint of the two squares
	assert.InDelta(t, 6.5, ds.Boundaries.Center.Lat, 1e-9)
	assert.InDelta(t, -75.0, ds.Boundaries.Center.Lon, 1e-9)
}

func TestLoad_MissingCSVIsFatal(t *testing.T) {
	dir := t.TempDir()
	geoPath := writeFile(t, dir, "munis.geojson", testGeoJSON)

	ds, err := Load(filepath.Join(dir, "missing.csv"), geoPath, newTestLogger())
	require.Error(t, err)
	assert.Nil(t, ds)
}

func TestLoad_MissingBoundariesDegrades(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeFile(t, dir, "mortalidad.csv", testCSV)

	ds, err := Load(csvPath, filepath.Join(dir, "missing.geojson"), newTestLogger())
	require.NoError(t, err)

	assert.True(t, ds.Boundaries.Empty())
	assert.JSONEq(t, `{"type":"FeatureCollection","features":[]}`, string(ds.Boundaries.Collection))
	assert.InDelta(t, 6.5, ds.Boundaries.Center.Lat, 1e-9)
	assert.InDelta(t, -75.5, ds.Boundaries.Center.Lon, 1e-9)
}

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"already padded", "05001", "05001"},
		{"short digits", "5001", "05001"},
		{"prefixed", "CO-05001", "05001"},
		{"float formatted", "5001.0", "05001"},
		{"first run wins", "12 y 34", "00012"},
		{"no digits", "sin-codigo", ""},
		{"empty", "", ""},
		{"longer than five", "123456", "123456"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCode(tt.raw))
		})
	}
}

func TestRateScaleMax(t *testing.T) {
	rate := func(v float64) *float64 { return &v }

	var aggs []models.MunicipalityAggregate
	for i := 1; i <= 20; i++ {
		aggs = append(aggs, models.MunicipalityAggregate{Rate: rate(float64(i))})
	}
	// undefined rates are ignored
	aggs = append(aggs, models.MunicipalityAggregate{Rate: nil})

	got := rateScaleMax(aggs)
	require.NotNil(t, got)
	assert.InDelta(t, 19.0, *got, 1e-9)
}

func TestRateScaleMax_NoDefinedRates(t *testing.T) {
	aggs := []models.MunicipalityAggregate{{Rate: nil}, {Rate: nil}}
	assert.Nil(t, rateScaleMax(aggs))
}

func TestParseIntOrZero(t *testing.T) {
	assert.Equal(t, 12, parseIntOrZero("12"))
	assert.Equal(t, 12, parseIntOrZero(" 12 "))
	assert.Equal(t, 12, parseIntOrZero("12.0"))
	assert.Equal(t, 0, parseIntOrZero(""))
	assert.Equal(t, 0, parseIntOrZero("abc"))
	assert.Equal(t, 0, parseIntOrZero("12.5"))
	assert.Equal(t, 0, parseIntOrZero("-3"))
}
