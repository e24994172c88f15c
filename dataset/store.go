package dataset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"

	"park-server/api"
	"park-server/models"
)

// Fetcher downloads a remote source.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Store memoizes the Dataset built from the two source paths. The owner
// decides its lifetime and calls Invalidate when the sources change.
type Store struct {
	historicalPath string
	forecastPath   string
	fetcher        Fetcher

	mu         sync.Mutex
	current    *Dataset
	generation uint64
}

// NewStore creates a Store. fetcher may be nil when both paths are local.
func NewStore(historicalPath, forecastPath string, fetcher Fetcher) *Store {
	return &Store{
		historicalPath: historicalPath,
		forecastPath:   forecastPath,
		fetcher:        fetcher,
	}
}

// Paths returns the configured source paths.
func (s *Store) Paths() []string {
	return []string{s.historicalPath, s.forecastPath}
}

// Dataset returns the cached Dataset, loading it on first use.
func (s *Store) Dataset(ctx context.Context) (*Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		return s.current, nil
	}
	ds, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.install(ds)
	return ds, nil
}

// Invalidate drops the cached Dataset.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

// Reload loads both sources again. The previous Dataset stays cached if
// loading fails.
func (s *Store) Reload(ctx context.Context) (*Dataset, error) {
	ds, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.install(ds)
	s.mu.Unlock()
	return ds, nil
}

// install must be called with mu held.
func (s *Store) install(ds *Dataset) {
	s.generation++
	ds.generation = s.generation
	s.current = ds
}

func (s *Store) load(ctx context.Context) (*Dataset, error) {
	historical, err := s.loadSource(ctx, s.historicalPath, HistoricalSchema, HistoricalRange())
	if err != nil {
		return nil, fmt.Errorf("failed to load historical data: %w", err)
	}
	forecast, err := s.loadSource(ctx, s.forecastPath, ForecastSchema, ForecastRange())
	if err != nil {
		return nil, fmt.Errorf("failed to load forecast data: %w", err)
	}
	log.Printf("[DatasetStore] Loaded %d historical and %d forecast records", len(historical), len(forecast))
	return New(historical, forecast), nil
}

func (s *Store) loadSource(ctx context.Context, path string, schema Schema, valid ValidRange) ([]models.Record, error) {
	if !IsRemote(path) {
		return Load(path, schema, valid)
	}
	if s.fetcher == nil {
		return nil, fmt.Errorf("%w: no fetcher configured for %s", ErrSourceNotFound, path)
	}
	body, err := s.fetcher.Fetch(ctx, path)
	if err != nil {
		var statusErr *api.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrParseFailure, path, err)
	}
	records, err := LoadReader(bytes.NewReader(body), schema, valid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// IsRemote reports whether path is an http(s) URL.
func IsRemote(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}
