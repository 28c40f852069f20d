// Package formatter renders result tables as aligned markdown for terminal
// inspection and debugging.
package formatter

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/jenniferstruthers1-nhs/DS-Vis-Acc-Maternity/internal/models"
)

// missingCell marks a nil optional field in the rendered output.
const missingCell = "-"

// FormatTable renders a table as an aligned markdown table. Optional
// columns (year, coordinates, rate, percent, comparison markers) appear
// only when at least one row populates them. Returns an empty string for an
// empty table.
func FormatTable(t models.Table) string {
	if len(t) == 0 {
		return ""
	}

	header, rows := tableCells(t)

	// Column widths by display width, floor 3 so the separator row keeps
	// its customary dashes.
	widths := make([]int, len(header))

	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}

	for _, row := range rows {
		for i, c := range row {
			if w := runewidth.StringWidth(c); w > widths[i] {
				widths[i] = w
			}
		}
	}

	for i := range widths {
		if widths[i] < 3 {
			widths[i] = 3
		}
	}

	var sb strings.Builder

	writeRow := func(cells []string) {
		sb.WriteString("|")

		for i, c := range cells {
			sb.WriteString(" ")
			sb.WriteString(c)

			if pad := widths[i] - runewidth.StringWidth(c); pad > 0 {
				sb.WriteString(strings.Repeat(" ", pad))
			}

			sb.WriteString(" |")
		}

		sb.WriteString("\n")
	}

	writeRow(header)

	sb.WriteString("|")

	for _, w := range widths {
		sb.WriteString(" ")
		sb.WriteString(strings.Repeat("-", w))
		sb.WriteString(" |")
	}

	sb.WriteString("\n")

	for _, row := range rows {
		writeRow(row)
	}

	return sb.String()
}

func tableCells(t models.Table) ([]string, [][]string) {
	var hasYear, hasMeasure, hasGeo, hasRate, hasPercent, hasMarkers bool

	for _, r := range t {
		hasYear = hasYear || r.Year != ""
		hasMeasure = hasMeasure || r.Measure != ""
		hasGeo = hasGeo || r.Lat != nil || r.Lon != nil
		hasRate = hasRate || r.Rate != nil
		hasPercent = hasPercent || r.Percent != nil
		hasMarkers = hasMarkers || r.AllSubmittersShare != nil
	}

	header := []string{"Org_Name", "Org_Level", "Dimension"}

	if hasMeasure {
		header = append(header, "Measure", "Value")
	}

	if hasYear {
		header = append(header, "Year")
	}

	if hasRate {
		header = append(header, "Rate")
	}

	if hasPercent {
		header = append(header, "Percent")
	}

	if hasGeo {
		header = append(header, "Latitude", "Longitude")
	}

	if hasMarkers {
		header = append(header, "All Submitters Share", "All Submitters Value")
	}

	rows := make([][]string, 0, len(t))

	for _, r := range t {
		row := []string{r.OrgName, r.OrgLevel, r.Dimension}

		if hasMeasure {
			value := missingCell
			if r.HasValue {
				value = formatFloat(r.Value)
			}

			row = append(row, r.Measure, value)
		}

		if hasYear {
			row = append(row, r.Year)
		}

		if hasRate {
			row = append(row, formatOptional(r.Rate))
		}

		if hasPercent {
			row = append(row, formatOptional(r.Percent))
		}

		if hasGeo {
			row = append(row, formatOptional(r.Lat), formatOptional(r.Lon))
		}

		if hasMarkers {
			row = append(row, formatOptional(r.AllSubmittersShare), formatOptional(r.AllSubmittersValue))
		}

		rows = append(rows, row)
	}

	return header, rows
}

func formatOptional(p *float64) string {
	if p == nil {
		return missingCell
	}

	return formatFloat(*p)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
