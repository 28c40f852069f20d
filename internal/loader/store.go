// Package loader reads the maternity statistics, coordinates and population
// source files into the shared table types.
package loader

import (
	"github.com/jenniferstruthers1-nhs/DS-Vis-Acc-Maternity/internal/config"
	"github.com/jenniferstruthers1-nhs/DS-Vis-Acc-Maternity/internal/models"
)

// Store supplies the source tables for one pipeline invocation. Implemented
// by FileStore (reads from disk) and CachedStore (read-through cache);
// tests substitute an in-memory fake.
type Store interface {
	// Stats returns the primary statistics table for a configured year.
	Stats(year string) (models.Table, error)

	// Geo returns the static coordinates reference, keyed by org code.
	Geo() ([]models.GeoPoint, error)

	// Population returns the raw population rows for a configured year.
	Population(year string) ([]models.PopulationRow, error)
}

// FileStore loads source tables from the files named in configuration.
type FileStore struct {
	cfg *config.Config
}

// NewFileStore creates a file-backed store.
func NewFileStore(cfg *config.Config) *FileStore {
	return &FileStore{cfg: cfg}
}

// Stats reads the primary statistics CSV for year.
func (s *FileStore) Stats(year string) (models.Table, error) {
	src, err := s.cfg.Year(year)
	if err != nil {
		return nil, err
	}

	return ReadStatsCSV(src.DataFile)
}

// Geo reads the coordinates CSV.
func (s *FileStore) Geo() ([]models.GeoPoint, error) {
	return ReadGeoCSV(s.cfg.GeoFile)
}

// Population reads the population workbook sheet for year.
func (s *FileStore) Population(year string) ([]models.PopulationRow, error) {
	src, err := s.cfg.Year(year)
	if err != nil {
		return nil, err
	}

	return ReadPopulationWorkbook(src.Population)
}
