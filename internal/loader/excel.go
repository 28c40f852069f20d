package loader

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jenniferstruthers1-nhs/DS-Vis-Acc-Maternity/internal/config"
	"github.com/jenniferstruthers1-nhs/DS-Vis-Acc-Maternity/internal/models"
)

// ErrShortSheet is returned when the population sheet has no rows below the
// preamble.
var ErrShortSheet = errors.New("population sheet shorter than header offset")

// The ONS workbook carries three rows of titles and notes above the header
// row.
const populationHeaderOffset = 3

// Name of the population figure column, constant across publications.
const colPopulationTotal = "Total"

// ReadPopulationWorkbook reads one year's population sheet. The first three
// rows are preamble; the fourth names the columns. Only the configured
// region name/code pair and the Total column are read. Rows with an empty
// region name or a non-numeric total are skipped.
func ReadPopulationWorkbook(src config.PopulationSource) ([]models.PopulationRow, error) {
	f, err := excelize.OpenFile(src.File)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", src.File, err)
	}
	defer f.Close()

	rows, err := f.GetRows(src.Sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q of %s: %w", src.Sheet, src.File, err)
	}

	if len(rows) <= populationHeaderOffset {
		return nil, fmt.Errorf("%w: sheet %q of %s", ErrShortSheet, src.Sheet, src.File)
	}

	idx, err := columnIndex(rows[populationHeaderOffset], src.RegionNameColumn, src.RegionCodeColumn, colPopulationTotal)
	if err != nil {
		return nil, fmt.Errorf("sheet %q of %s: %w", src.Sheet, src.File, err)
	}

	out := make([]models.PopulationRow, 0, len(rows)-populationHeaderOffset-1)

	for _, row := range rows[populationHeaderOffset+1:] {
		name := cell(row, idx[src.RegionNameColumn])
		if name == "" {
			continue
		}

		total, ok := parseNumber(cell(row, idx[colPopulationTotal]))
		if !ok {
			continue
		}

		out = append(out, models.PopulationRow{
			RegionName: name,
			RegionCode: cell(row, idx[src.RegionCodeColumn]),
			Total:      total,
		})
	}

	return out, nil
}
