package services

import (
	"context"
	"log/slog"
	"time"

	"mdscli/internal/cache"
	"mdscli/internal/config"
)

// HealthStatus is the payload of the health endpoint.
type HealthStatus struct {
	Status         string `json:"status"`
	UptimeSeconds  int64  `json:"uptime_seconds"`
	CachedDatasets int    `json:"cached_datasets"`
	MinYear        int    `json:"min_year"`
	MaxYear        int    `json:"max_year"`
}

// HealthService reports process and cache health.
type HealthService struct {
	store   *cache.Store
	started time.Time
	logger  *slog.Logger
}

// NewHealthService creates a health service.
func NewHealthService(store *cache.Store, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		store:   store,
		started: time.Now(),
		logger:  logger.With(slog.String("component", "health_service")),
	}
}

// Check returns the current health status. The cache being unreadable
// degrades the status instead of failing the endpoint.
func (s *HealthService) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:        "healthy",
		UptimeSeconds: int64(time.Since(s.started).Seconds()),
		MinYear:       config.MinEndYear,
		MaxYear:       config.MaxEndYear,
	}

	keys, err := s.store.Keys()
	if err != nil {
		s.logger.Warn("cache unreadable during health check",
			slog.String("error", err.Error()))
		status.Status = "degraded"
		return status
	}
	status.CachedDatasets = len(keys)
	return status
}
