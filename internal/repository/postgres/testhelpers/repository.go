package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"github.com/waste-analytics/internal/domain/repository"
	"github.com/waste-analytics/internal/repository/postgres"
	"go.uber.org/zap"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewDatasetRepositoryForTest creates a dataset repository over the waste_records table
func NewDatasetRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.DatasetRepository {
	return postgres.NewDatasetRepository(NewDBForTest(db, logger), "waste_records")
}
