package loader

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/jenniferstruthers1-nhs/DS-Vis-Acc-Maternity/internal/models"
)

// Cache durations. Source files change at most once per publication cycle,
// so entries can live for a while; the geo file is static.
const (
	statsCacheDuration = 1 * time.Hour
	cleanupInterval    = 2 * time.Hour
)

// CachedStore is a read-through cache around another Store. Cached tables
// are treated as immutable: every read returns a fresh deep copy, so
// concurrent invocations can transform their own tables without touching
// the shared cached copy.
type CachedStore struct {
	inner Store
	cache *gocache.Cache
}

// NewCachedStore wraps inner with an in-memory cache.
func NewCachedStore(inner Store) *CachedStore {
	return &CachedStore{
		inner: inner,
		cache: gocache.New(statsCacheDuration, cleanupInterval),
	}
}

// Stats returns a copy of the cached statistics table for year, loading it
// on first use.
func (s *CachedStore) Stats(year string) (models.Table, error) {
	key := "stats:" + year

	if v, ok := s.cache.Get(key); ok {
		return v.(models.Table).Clone(), nil
	}

	table, err := s.inner.Stats(year)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, table.Clone(), gocache.DefaultExpiration)

	return table, nil
}

// Geo returns a copy of the cached coordinates reference.
func (s *CachedStore) Geo() ([]models.GeoPoint, error) {
	const key = "geo"

	if v, ok := s.cache.Get(key); ok {
		return copyGeo(v.([]models.GeoPoint)), nil
	}

	points, err := s.inner.Geo()
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, copyGeo(points), gocache.NoExpiration)

	return points, nil
}

// Population returns a copy of the cached population rows for year.
func (s *CachedStore) Population(year string) ([]models.PopulationRow, error) {
	key := "population:" + year

	if v, ok := s.cache.Get(key); ok {
		return copyPopulation(v.([]models.PopulationRow)), nil
	}

	rows, err := s.inner.Population(year)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, copyPopulation(rows), gocache.DefaultExpiration)

	return rows, nil
}

func copyGeo(in []models.GeoPoint) []models.GeoPoint {
	out := make([]models.GeoPoint, len(in))
	copy(out, in)

	return out
}

func copyPopulation(in []models.PopulationRow) []models.PopulationRow {
	out := make([]models.PopulationRow, len(in))
	copy(out, in)

	return out
}
