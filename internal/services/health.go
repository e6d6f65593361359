package services

import (
	"fmt"
	"log"

	"github.com/localnerve/studynotes/internal/config"
	"github.com/localnerve/studynotes/internal/importer"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	DataFile     string            `json:"dataFile"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck performs a health check of the service: database
// connectivity plus presence of the library data file. A missing data
// file is reported but never makes the service unhealthy; the importer
// and location API degrade without it.
func HealthCheck(cfg *config.Config, db *gorm.DB) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	sqlDB, err := db.DB()
	if err != nil {
		result.Status = "unhealthy"
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database connection error: %v", err)
		log.Printf("Health check failed - database connection: %v", err)
	} else {
		if err := sqlDB.Ping(); err != nil {
			result.Status = "unhealthy"
			result.Database = "unreachable"
			result.Details["database_ping_error"] = err.Error()
			result.ErrorMessage = fmt.Sprintf("Database ping failed: %v", err)
			log.Printf("Health check failed - database ping: %v", err)
		} else {
			result.Database = "ok"
			result.Details["database_type"] = cfg.DBType
		}
	}

	if path, err := importer.Resolve(cfg); err != nil {
		result.DataFile = "missing"
		result.Details["data_file_error"] = err.Error()
	} else {
		result.DataFile = "ok"
		result.Details["data_file"] = path
	}

	if result.Status == "healthy" {
		log.Println("Health check passed")
	}

	return result
}
