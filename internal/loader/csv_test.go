package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// Helper to create a temp CSV file.
func createTempCSV(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create temp CSV: %v", err)
	}

	return path
}

const statsCSV = `Org_Code,Org_Name,Org_Level,Dimension,Measure,Value
Y56,LONDON COMMISSIONING REGION,NHS England (Region),SmokingStatusGroupBooking,Smoker,10
Y56,LONDON COMMISSIONING REGION,NHS England (Region),SmokingStatusGroupBooking,Non-smoker,90
ALL,ALL SUBMITTERS,National,TotalBabies,Total,"1,234"
RX1,SOME TRUST,Provider,SmokingStatusGroupBooking,Smoker,*
`

func TestReadStatsCSV(t *testing.T) {
	path := createTempCSV(t, "stats.csv", statsCSV)

	table, err := ReadStatsCSV(path)
	if err != nil {
		t.Fatalf("ReadStatsCSV failed: %v", err)
	}

	if len(table) != 4 {
		t.Fatalf("Expected 4 rows, got %d", len(table))
	}

	first := table[0]
	if first.OrgName != "LONDON COMMISSIONING REGION" || first.OrgCode != "Y56" {
		t.Errorf("Unexpected first row: %+v", first)
	}

	if !first.HasValue || first.Value != 10 {
		t.Errorf("Value = %v (has=%v), want 10", first.Value, first.HasValue)
	}
}

func TestReadStatsCSV_ThousandsSeparator(t *testing.T) {
	path := createTempCSV(t, "stats.csv", statsCSV)

	table, err := ReadStatsCSV(path)
	if err != nil {
		t.Fatalf("ReadStatsCSV failed: %v", err)
	}

	if !table[2].HasValue || table[2].Value != 1234 {
		t.Errorf("Value = %v (has=%v), want 1234", table[2].Value, table[2].HasValue)
	}
}

func TestReadStatsCSV_SuppressedValue(t *testing.T) {
	path := createTempCSV(t, "stats.csv", statsCSV)

	table, err := ReadStatsCSV(path)
	if err != nil {
		t.Fatalf("ReadStatsCSV failed: %v", err)
	}

	// The "*" suppression marker is kept as a row with no value.
	if table[3].HasValue {
		t.Errorf("Suppressed cell should have HasValue=false, got %v", table[3].Value)
	}
}

func TestReadStatsCSV_ColumnOrderIndependent(t *testing.T) {
	path := createTempCSV(t, "stats.csv",
		"Value,Measure,Dimension,Org_Level,Org_Name,Org_Code\n"+
			"5,Smoker,SmokingStatusGroupBooking,Provider,SOME TRUST,RX1\n")

	table, err := ReadStatsCSV(path)
	if err != nil {
		t.Fatalf("ReadStatsCSV failed: %v", err)
	}

	if table[0].OrgCode != "RX1" || table[0].Value != 5 {
		t.Errorf("Columns resolved wrongly: %+v", table[0])
	}
}

func TestReadStatsCSV_MissingColumn(t *testing.T) {
	path := createTempCSV(t, "stats.csv", "Org_Name,Value\nLondon,1\n")

	_, err := ReadStatsCSV(path)
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("Expected ErrMissingColumn, got %v", err)
	}
}

func TestReadStatsCSV_FileNotFound(t *testing.T) {
	_, err := ReadStatsCSV("/nonexistent/stats.csv")
	if err == nil {
		t.Fatal("Expected error for nonexistent file")
	}
}

func TestReadGeoCSV(t *testing.T) {
	path := createTempCSV(t, "locations.csv",
		"org_code,org_name,latitude,longitude\n"+
			"Y56,London,51.5074,-0.1278\n"+
			"Y60,Midlands,52.4862,-1.8904\n")

	points, err := ReadGeoCSV(path)
	if err != nil {
		t.Fatalf("ReadGeoCSV failed: %v", err)
	}

	if len(points) != 2 {
		t.Fatalf("Expected 2 points, got %d", len(points))
	}

	if points[0].OrgCode != "Y56" || points[0].Lat != 51.5074 || points[0].Lon != -0.1278 {
		t.Errorf("Unexpected first point: %+v", points[0])
	}
}

func TestReadGeoCSV_BadCoordinate(t *testing.T) {
	path := createTempCSV(t, "locations.csv",
		"org_code,latitude,longitude\nY56,not-a-number,-0.1278\n")

	_, err := ReadGeoCSV(path)
	if !errors.Is(err, ErrBadCoordinate) {
		t.Fatalf("Expected ErrBadCoordinate, got %v", err)
	}
}
