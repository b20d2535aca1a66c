package application

import (
	"context"

	"github.com/alorle/m3u-editor/internal/metrics"
	"github.com/alorle/m3u-editor/internal/port/driven"
)

// HealthService orchestrates health checks for the application and its dependencies.
type HealthService struct {
	storage driven.PlaylistRepository
}

// NewHealthService creates a new health check service.
func NewHealthService(storage driven.PlaylistRepository) *HealthService {
	return &HealthService{storage: storage}
}

// ComponentHealth represents the health status of a single component.
type ComponentHealth struct {
	Status string // "ok" or "error"
	Error  string // empty if status is "ok", otherwise contains error message
}

// HealthStatus represents the overall health status of the application.
type HealthStatus struct {
	Status  string          // "ok" if all components are healthy, "degraded" otherwise
	Storage ComponentHealth // playlist storage health
}

// Check performs health checks on all dependencies.
func (s *HealthService) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:  "ok",
		Storage: ComponentHealth{Status: "ok"},
	}

	if err := s.storage.Ping(ctx); err != nil {
		status.Storage = ComponentHealth{
			Status: "error",
			Error:  err.Error(),
		}
		status.Status = "degraded"
		metrics.RecordHealthCheckFailure()
	}

	return status
}
