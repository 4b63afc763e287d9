package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/waste-analytics/internal/config"
	"github.com/waste-analytics/internal/domain"
	"github.com/waste-analytics/internal/domain/repository"
	"go.uber.org/zap"
)

type datasetRepository struct {
	db    *DB
	query string
}

// NewDatasetRepository создает источник датасета из таблицы PostgreSQL
func NewDatasetRepository(db *DB, table string) repository.DatasetRepository {
	query := fmt.Sprintf(`
		SELECT
			city,
			waste_type,
			waste_generated,
			recycling_rate,
			mes,
			disposal_method,
			cost_of_waste_management,
			awareness_campaigns_count,
			population_density,
			landfill_capacity,
			year
		FROM %s
		ORDER BY id`, pq.QuoteIdentifier(table))

	return &datasetRepository{db: db, query: query}
}

func (r *datasetRepository) Name() string {
	return config.SourcePostgres
}

// recordRow - строка таблицы; любая колонка может быть NULL
type recordRow struct {
	City                    sql.NullString  `db:"city"`
	WasteType               sql.NullString  `db:"waste_type"`
	WasteGenerated          sql.NullFloat64 `db:"waste_generated"`
	RecyclingRate           sql.NullFloat64 `db:"recycling_rate"`
	MES                     sql.NullFloat64 `db:"mes"`
	DisposalMethod          sql.NullString  `db:"disposal_method"`
	CostOfWasteManagement   sql.NullFloat64 `db:"cost_of_waste_management"`
	AwarenessCampaignsCount sql.NullInt64   `db:"awareness_campaigns_count"`
	PopulationDensity       sql.NullFloat64 `db:"population_density"`
	LandfillCapacity        sql.NullFloat64 `db:"landfill_capacity"`
	Year                    sql.NullInt64   `db:"year"`
}

// toDomain подставляет 0 и пустую строку вместо NULL
func (row recordRow) toDomain() domain.Record {
	return domain.Record{
		City:                    row.City.String,
		WasteType:               row.WasteType.String,
		WasteGenerated:          row.WasteGenerated.Float64,
		RecyclingRate:           row.RecyclingRate.Float64,
		MES:                     row.MES.Float64,
		DisposalMethod:          row.DisposalMethod.String,
		CostOfWasteManagement:   row.CostOfWasteManagement.Float64,
		AwarenessCampaignsCount: int(row.AwarenessCampaignsCount.Int64),
		PopulationDensity:       row.PopulationDensity.Float64,
		LandfillCapacity:        row.LandfillCapacity.Float64,
		Year:                    int(row.Year.Int64),
	}
}

func (r *datasetRepository) Fetch(ctx context.Context) ([]domain.Record, error) {
	var rows []recordRow
	if err := r.db.SelectContext(ctx, &rows, r.query); err != nil {
		r.db.logger.Error("Failed to select dataset", zap.Error(err))
		return nil, domain.NewLoadError(r.Name(), fmt.Errorf("select records: %w", err))
	}

	records := make([]domain.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toDomain())
	}

	r.db.logger.Debug("Dataset selected", zap.Int("records", len(records)))
	return records, nil
}
