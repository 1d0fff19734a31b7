package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/grievance-service/internal/domain/repository"
	"github.com/grievance-service/internal/repository/postgres"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewAreaRepositoryForTest creates an area repository with test database and logger
func NewAreaRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.AreaRepository {
	return postgres.NewAreaRepository(NewDBForTest(db, logger))
}

// NewGrievanceRepositoryForTest creates a grievance repository with test database and logger
func NewGrievanceRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.GrievanceRepository {
	return postgres.NewGrievanceRepository(NewDBForTest(db, logger))
}
