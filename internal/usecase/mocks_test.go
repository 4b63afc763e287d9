package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/waste-analytics/internal/config"
	"github.com/waste-analytics/internal/domain"
	"github.com/waste-analytics/internal/store"
	"github.com/waste-analytics/internal/usecase"
)

// MockDatasetRepository - мок источника датасета
type MockDatasetRepository struct {
	mock.Mock
}

func (m *MockDatasetRepository) Fetch(ctx context.Context) ([]domain.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Record), args.Error(1)
}

func (m *MockDatasetRepository) Name() string {
	return "mock"
}

func testRecords() []domain.Record {
	return []domain.Record{
		{City: "Delhi", WasteType: "Plastic", WasteGenerated: 100, RecyclingRate: 40, MES: 5, DisposalMethod: "Landfill",
			CostOfWasteManagement: 1000, AwarenessCampaignsCount: 10, PopulationDensity: 5000, LandfillCapacity: 200000, Year: 2020},
		{City: "Delhi", WasteType: "Organic", WasteGenerated: 200, RecyclingRate: 60, MES: 7, DisposalMethod: "Composting",
			CostOfWasteManagement: 2000, AwarenessCampaignsCount: 20, PopulationDensity: 9999, LandfillCapacity: 1, Year: 2021},
		{City: "Mumbai", WasteType: "Plastic", WasteGenerated: 300, RecyclingRate: 50, MES: 6, DisposalMethod: "Recycling",
			CostOfWasteManagement: 3000, AwarenessCampaignsCount: 30, PopulationDensity: 8000, LandfillCapacity: 300000, Year: 2020},
	}
}

func testViewConfig() config.ViewConfig {
	return config.ViewConfig{TopCities: 10, TablePageSize: 2, MaxTablePageSize: 5}
}

// newLoadedDataset - DatasetUseCase с уже загруженными записями
func newLoadedDataset(records []domain.Record) (*usecase.DatasetUseCase, *MockDatasetRepository) {
	repo := &MockDatasetRepository{}
	repo.On("Fetch", mock.Anything).Return(records, nil)

	uc := usecase.NewDatasetUseCase(store.New(), repo, zap.NewNop())
	if err := uc.Load(context.Background()); err != nil {
		panic(err)
	}
	return uc, repo
}

func newEmptyDataset() *usecase.DatasetUseCase {
	return usecase.NewDatasetUseCase(store.New(), &MockDatasetRepository{}, zap.NewNop())
}
