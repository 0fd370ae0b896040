package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/localnerve/rentdb/internal/config"
	"github.com/localnerve/rentdb/internal/utils"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	DatabaseHost string            `json:"database_host,omitempty"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// Healthy reports whether every probe passed
func (r HealthCheckResult) Healthy() bool {
	return r.Status == "healthy"
}

// HealthCheck pings the database and, for networked dialects, the database host
func HealthCheck(ctx context.Context, cfg *config.Config, db *gorm.DB, log *slog.Logger) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}
	fail := func(component, message string, err error) {
		result.Status = "unhealthy"
		result.Details[component+"_error"] = err.Error()
		if result.ErrorMessage != "" {
			result.ErrorMessage += "; "
		}
		result.ErrorMessage += fmt.Sprintf("%s: %v", message, err)
		log.Warn("health check failed", "component", component, "error", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		result.Database = "error"
		fail("database", "database connection error", err)
	} else {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := sqlDB.PingContext(pingCtx); err != nil {
			result.Database = "unreachable"
			fail("database_ping", "database ping failed", err)
		} else {
			result.Database = "ok"
			result.Details["database_type"] = cfg.DBType
			result.Details["database_name"] = cfg.DBDatabase
		}
	}

	if !cfg.IsEmbedded() {
		if err := utils.PingHost(cfg.DBHost, cfg.DefaultDBPort(), utils.DefaultPingTimeout); err != nil {
			result.DatabaseHost = "unreachable"
			fail("database_host", "database host unreachable", err)
		} else {
			result.DatabaseHost = "ok"
		}
	}

	if result.Healthy() {
		log.Debug("health check passed")
	}

	return result
}
