package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jenniferstruthers1-nhs/DS-Vis-Acc-Maternity/internal/models"
)

// CSV reading errors.
var (
	ErrEmptyFile     = errors.New("file contains no header row")
	ErrMissingColumn = errors.New("required column not found")
	ErrBadCoordinate = errors.New("invalid coordinate value")
)

// Column names expected in the primary statistics file.
const (
	colOrgName   = "Org_Name"
	colOrgCode   = "Org_Code"
	colOrgLevel  = "Org_Level"
	colDimension = "Dimension"
	colMeasure   = "Measure"
	colValue     = "Value"
)

// Column names expected in the coordinates file.
const (
	colGeoCode = "org_code"
	colGeoLat  = "latitude"
	colGeoLon  = "longitude"
)

// ReadStatsCSV reads a primary statistics file. Columns are located by
// header name, so column order does not matter. Rows whose Value cell is
// empty or non-numeric are kept with HasValue=false; later sums skip them.
func ReadStatsCSV(path string) (models.Table, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	idx, err := columnIndex(rows[0], colOrgName, colOrgCode, colOrgLevel, colDimension, colMeasure, colValue)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	table := make(models.Table, 0, len(rows)-1)

	for _, row := range rows[1:] {
		rec := models.Record{
			OrgName:   cell(row, idx[colOrgName]),
			OrgCode:   cell(row, idx[colOrgCode]),
			OrgLevel:  cell(row, idx[colOrgLevel]),
			Dimension: cell(row, idx[colDimension]),
			Measure:   cell(row, idx[colMeasure]),
		}

		if v, ok := parseNumber(cell(row, idx[colValue])); ok {
			rec.Value = v
			rec.HasValue = true
		}

		table = append(table, rec)
	}

	return table, nil
}

// ReadGeoCSV reads the static coordinates file. Rows with unparseable
// coordinates are an error: the reference file is small and curated, so a
// bad cell is a data defect rather than an expected condition.
func ReadGeoCSV(path string) ([]models.GeoPoint, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	idx, err := columnIndex(rows[0], colGeoCode, colGeoLat, colGeoLon)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	points := make([]models.GeoPoint, 0, len(rows)-1)

	for i, row := range rows[1:] {
		lat, latOK := parseNumber(cell(row, idx[colGeoLat]))
		lon, lonOK := parseNumber(cell(row, idx[colGeoLon]))

		if !latOK || !lonOK {
			return nil, fmt.Errorf("%w: %s row %d", ErrBadCoordinate, path, i+2)
		}

		points = append(points, models.GeoPoint{
			OrgCode: cell(row, idx[colGeoCode]),
			Lat:     lat,
			Lon:     lon,
		})
	}

	return points, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	return rows, nil
}

// columnIndex maps each wanted header name to its position in the header
// row.
func columnIndex(header []string, wanted ...string) (map[string]int, error) {
	idx := make(map[string]int, len(wanted))

	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}

	for _, name := range wanted {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}

	return idx, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[i])
}

// parseNumber parses a numeric cell, tolerating thousands separators.
func parseNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}

	return v, true
}
