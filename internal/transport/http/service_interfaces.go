package http

import (
	"context"

	"mdscli/internal/services"
	"mdscli/pkg/contracts/domain"
)

// EnrollmentServiceInterface is the service surface the handlers consume.
type EnrollmentServiceInterface interface {
	FetchEnr(ctx context.Context, endYear int, refresh bool) ([]*domain.CanonicalRow, error)
	FetchEnrTidy(ctx context.Context, endYear int, refresh bool) ([]domain.TidyRecord, error)
	AvailableYears() []int
	CachedYears() ([]int, error)
}

// HealthServiceInterface reports process health.
type HealthServiceInterface interface {
	Check(ctx context.Context) services.HealthStatus
}
