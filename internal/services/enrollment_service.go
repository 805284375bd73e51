package services

import (
	"context"
	"log/slog"
	"sort"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"mdscli/internal/cache"
	"mdscli/internal/config"
	"mdscli/internal/fetch"
	"mdscli/internal/infrastructure"
	"mdscli/pkg/contracts/domain"
)

// YearFetcher runs the full pipeline for one end year.
type YearFetcher interface {
	FetchYear(ctx context.Context, endYear int) (*fetch.Dataset, error)
}

// EnrollmentService serves the processed datasets, reading the cache first
// and running the pipeline on a miss. refresh=true bypasses the cache and
// overwrites it.
type EnrollmentService struct {
	pipeline YearFetcher
	store    *cache.Store
	metrics  *infrastructure.Metrics
	logger   *slog.Logger
}

// NewEnrollmentService wires the service. metrics may be nil.
func NewEnrollmentService(pipeline YearFetcher, store *cache.Store, metrics *infrastructure.Metrics, logger *slog.Logger) *EnrollmentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &EnrollmentService{
		pipeline: pipeline,
		store:    store,
		metrics:  metrics,
		logger:   logger.With(slog.String("component", "enrollment_service")),
	}
}

// FetchEnr returns the canonical wide rows for one end year.
func (s *EnrollmentService) FetchEnr(ctx context.Context, endYear int, refresh bool) ([]*domain.CanonicalRow, error) {
	key := cache.Key{EndYear: endYear, Kind: domain.DatasetEnrWide}
	if !refresh {
		var rows []*domain.CanonicalRow
		if ok := s.readCached(key, &rows); ok {
			return rows, nil
		}
	}

	ds, err := s.fetchAndStore(ctx, endYear)
	if err != nil {
		return nil, err
	}
	return ds.Wide, nil
}

// FetchEnrTidy returns the tidy records for one end year.
func (s *EnrollmentService) FetchEnrTidy(ctx context.Context, endYear int, refresh bool) ([]domain.TidyRecord, error) {
	key := cache.Key{EndYear: endYear, Kind: domain.DatasetEnrTidy}
	if !refresh {
		var records []domain.TidyRecord
		if ok := s.readCached(key, &records); ok {
			return records, nil
		}
	}

	ds, err := s.fetchAndStore(ctx, endYear)
	if err != nil {
		return nil, err
	}
	return ds.Tidy, nil
}

// AvailableYears reports the supported end-year range.
func (s *EnrollmentService) AvailableYears() []int {
	return config.AvailableYears()
}

// CachedYears lists the end years that have a cached wide dataset.
func (s *EnrollmentService) CachedYears() ([]int, error) {
	keys, err := s.store.Keys()
	if err != nil {
		return nil, err
	}
	var years []int
	for _, key := range keys {
		if key.Kind == domain.DatasetEnrWide {
			years = append(years, key.EndYear)
		}
	}
	sort.Ints(years)
	return years, nil
}

// ClearYear drops both cached datasets for one end year.
func (s *EnrollmentService) ClearYear(endYear int) (int, error) {
	return s.store.Clear(func(key cache.Key) bool {
		return key.EndYear == endYear
	})
}

// readCached loads an entry into v, counting hits and misses. A corrupt
// entry is treated as a miss.
func (s *EnrollmentService) readCached(key cache.Key, v interface{}) bool {
	if !s.store.Exists(key) {
		s.countCache(false, key)
		return false
	}
	if err := s.store.Read(key, v); err != nil {
		s.logger.Warn("discarding unreadable cache entry",
			slog.String("key", key.String()),
			slog.String("error", err.Error()))
		s.countCache(false, key)
		return false
	}
	s.countCache(true, key)
	return true
}

// fetchAndStore runs the pipeline for one year and caches both dataset
// kinds. A cache write failure is logged but does not fail the fetch.
func (s *EnrollmentService) fetchAndStore(ctx context.Context, endYear int) (*fetch.Dataset, error) {
	ds, err := s.pipeline.FetchYear(ctx, endYear)
	if err != nil {
		return nil, err
	}

	wideKey := cache.Key{EndYear: endYear, Kind: domain.DatasetEnrWide}
	if err := s.store.Write(wideKey, ds.Wide); err != nil {
		s.logger.Warn("cache write failed",
			slog.String("key", wideKey.String()),
			slog.String("error", err.Error()))
	}
	tidyKey := cache.Key{EndYear: endYear, Kind: domain.DatasetEnrTidy}
	if err := s.store.Write(tidyKey, ds.Tidy); err != nil {
		s.logger.Warn("cache write failed",
			slog.String("key", tidyKey.String()),
			slog.String("error", err.Error()))
	}
	return ds, nil
}

func (s *EnrollmentService) countCache(hit bool, key cache.Key) {
	if s.metrics == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("kind", string(key.Kind)))
	if hit {
		s.metrics.CacheHits.Add(context.Background(), 1, attrs)
	} else {
		s.metrics.CacheMisses.Add(context.Background(), 1, attrs)
	}
}
