package formatter

import (
	"strings"
	"testing"

	"github.com/jenniferstruthers1-nhs/DS-Vis-Acc-Maternity/internal/models"
)

func TestFormatTable_Empty(t *testing.T) {
	if got := FormatTable(models.Table{}); got != "" {
		t.Errorf("Expected empty string, got %q", got)
	}
}

func TestFormatTable_MapView(t *testing.T) {
	table := models.Table{
		{
			OrgName:   "London",
			OrgLevel:  "NHS England (Region)",
			Dimension: "SmokingStatusGroupBooking",
			Rate:      models.Float(0.1),
			Percent:   models.Float(10),
			Lat:       models.Float(51.5),
			Lon:       models.Float(-0.12),
		},
	}

	out := FormatTable(table)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header, separator and one row; got %d lines", len(lines))
	}

	for _, want := range []string{"Org_Name", "Rate", "Percent", "Latitude", "Longitude"} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("Header missing %q: %s", want, lines[0])
		}
	}

	if !strings.Contains(lines[2], "London") || !strings.Contains(lines[2], "51.5") {
		t.Errorf("Row missing values: %s", lines[2])
	}
}

func TestFormatTable_OmitsUnusedColumns(t *testing.T) {
	table := models.Table{
		{OrgName: "London", OrgLevel: "NHS England (Region)", Dimension: "SmokingStatusGroupBooking", Measure: "Smoker", Value: 10, HasValue: true},
	}

	out := FormatTable(table)

	if strings.Contains(out, "Rate") {
		t.Errorf("Rate column should be omitted when no row has one:\n%s", out)
	}

	if !strings.Contains(out, "Measure") {
		t.Errorf("Measure column missing:\n%s", out)
	}
}

func TestFormatTable_MissingMarker(t *testing.T) {
	table := models.Table{
		{OrgName: "London", Rate: models.Float(0.1)},
		{OrgName: "Narnia"},
	}

	out := FormatTable(table)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if !strings.Contains(lines[3], "-") {
		t.Errorf("Missing rate should render as a dash: %s", lines[3])
	}
}

func TestFormatTable_Aligned(t *testing.T) {
	table := models.Table{
		{OrgName: "North East and Yorkshire"},
		{OrgName: "London"},
	}

	out := FormatTable(table)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	width := len(lines[0])
	for i, line := range lines {
		if len(line) != width {
			t.Errorf("Line %d width %d, want %d:\n%s", i, len(line), width, out)
		}
	}
}
