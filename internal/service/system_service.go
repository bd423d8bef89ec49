package service

import (
	"database/sql"

	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/database"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{
		db: db,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// VersionInfo describes the running build and the applied schema version.
type VersionInfo struct {
	AppVersion string `json:"app_version"`
	DbVersion  int64  `json:"db_version"`
}

// CheckVersion reports the application version and the highest applied
// database migration.
func (s *SystemService) CheckVersion() (VersionInfo, error) {
	dbVersion, err := database.MigrationVersion(s.db)
	if err != nil {
		return VersionInfo{}, err
	}
	return VersionInfo{
		AppVersion: version.Version,
		DbVersion:  dbVersion,
	}, nil
}
