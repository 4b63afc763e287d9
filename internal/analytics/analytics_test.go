package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waste-analytics/internal/domain"
)

const delta = 1e-9

func fixture() []domain.Record {
	return []domain.Record{
		{City: "Delhi", WasteType: "Plastic", WasteGenerated: 100, RecyclingRate: 40, MES: 5, DisposalMethod: "Landfill",
			CostOfWasteManagement: 1000, AwarenessCampaignsCount: 10, PopulationDensity: 5000, LandfillCapacity: 200000, Year: 2020},
		{City: "Delhi", WasteType: "Organic", WasteGenerated: 200, RecyclingRate: 60, MES: 7, DisposalMethod: "Composting",
			CostOfWasteManagement: 2000, AwarenessCampaignsCount: 20, PopulationDensity: 9999, LandfillCapacity: 1, Year: 2021},
		{City: "Mumbai", WasteType: "Plastic", WasteGenerated: 300, RecyclingRate: 50, MES: 6, DisposalMethod: "Recycling",
			CostOfWasteManagement: 3000, AwarenessCampaignsCount: 30, PopulationDensity: 8000, LandfillCapacity: 300000, Year: 2020},
		{City: "Mumbai", WasteType: "Organic", WasteGenerated: 400, RecyclingRate: 50, MES: 8, DisposalMethod: "Landfill",
			CostOfWasteManagement: 500, AwarenessCampaignsCount: 0, PopulationDensity: 8000, LandfillCapacity: 300000, Year: 2021},
		{City: "Atlantis", WasteType: "Plastic", WasteGenerated: 50, RecyclingRate: 90, MES: 9, DisposalMethod: "Landfill",
			CostOfWasteManagement: 100, AwarenessCampaignsCount: 5, PopulationDensity: 10, LandfillCapacity: 10, Year: 2020},
	}
}

func cities(records []domain.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.City)
	}
	return out
}

func TestApply_EmptyPredicatesIsIdentity(t *testing.T) {
	records := fixture()

	assert.True(t, PredicateSet{}.IsEmpty())
	assert.Equal(t, records, Apply(records, PredicateSet{}))
	assert.Equal(t, records, Apply(records, PredicateSet{Cities: []string{}}))
}

func TestApply_Predicates(t *testing.T) {
	records := fixture()

	tests := []struct {
		name     string
		preds    PredicateSet
		expected []int
	}{
		{"single city", PredicateSet{Cities: []string{"Delhi"}}, []int{0, 1}},
		{"city and type", PredicateSet{Cities: []string{"Delhi"}, WasteTypes: []string{"Organic"}}, []int{1}},
		{"methods keep order", PredicateSet{DisposalMethods: []string{"Landfill"}}, []int{0, 3, 4}},
		{"unknown city", PredicateSet{Cities: []string{"Nowhere"}}, []int{}},
		{"search is case-insensitive", PredicateSet{SearchText: "delhi"}, []int{0, 1}},
		{"search numeric field", PredicateSet{SearchText: "2020"}, []int{0, 2, 4}},
		{"search with selection", PredicateSet{SearchText: "plastic", Cities: []string{"Mumbai", "Atlantis"}}, []int{2, 4}},
		{"search never spans fields", PredicateSet{SearchText: "delhiplastic"}, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(records, tt.preds)
			want := make([]domain.Record, 0, len(tt.expected))
			for _, i := range tt.expected {
				want = append(want, records[i])
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	records := fixture()
	Apply(records, PredicateSet{Cities: []string{"Mumbai"}, SearchText: "organic"})
	assert.Equal(t, fixture(), records)
}

func TestGroupBy_AverageByCity(t *testing.T) {
	records := []domain.Record{
		{City: "Delhi", RecyclingRate: 40},
		{City: "Delhi", RecyclingRate: 60},
		{City: "Mumbai", RecyclingRate: 50},
	}

	buckets := GroupBy(records, ByCity, domain.FieldRecyclingRate)
	require.Equal(t, 2, buckets.Len())
	assert.Equal(t, []GroupKey{{Primary: "Delhi"}, {Primary: "Mumbai"}}, buckets.Keys())

	delhi, ok := buckets.Get(GroupKey{Primary: "Delhi"})
	require.True(t, ok)
	assert.Equal(t, 2, delhi.Count)
	assert.InDelta(t, 100, delhi.Sum(domain.FieldRecyclingRate), delta)
	assert.InDelta(t, 50, Average(delhi, domain.FieldRecyclingRate), delta)

	mumbai, _ := buckets.Get(GroupKey{Primary: "Mumbai"})
	assert.InDelta(t, 50, Average(mumbai, domain.FieldRecyclingRate), delta)
}

func TestGroupBy_CountsMatchInput(t *testing.T) {
	records := fixture()
	buckets := GroupBy(records, ByWasteTypeAndMethod, domain.FieldMES)

	total := 0
	buckets.Each(func(b *Bucket) { total += b.Count })
	assert.Equal(t, len(records), total)
}

func TestAverage_EmptyBucketIsZero(t *testing.T) {
	assert.Equal(t, 0.0, Average(nil, domain.FieldMES))
	assert.Equal(t, 0.0, Average(&Bucket{}, domain.FieldMES))
	assert.Equal(t, 0.0, Mean(nil, domain.FieldMES))
	assert.False(t, math.IsNaN(Mean([]domain.Record{}, domain.FieldRecyclingRate)))
}

func TestGroupKey_String(t *testing.T) {
	assert.Equal(t, "Delhi", GroupKey{Primary: "Delhi"}.String())
	assert.Equal(t, "Plastic-Landfill", GroupKey{Primary: "Plastic", Secondary: "Landfill"}.String())
}

func TestDenseMatrix_FillsMissingPairsWithZero(t *testing.T) {
	buckets := GroupBy(fixture(), ByWasteTypeAndMethod, domain.FieldMES)
	m := DenseMatrix(buckets, domain.FieldMES)

	assert.Equal(t, []string{"Plastic", "Organic"}, m.Rows)
	assert.Equal(t, []string{"Landfill", "Composting", "Recycling"}, m.Cols)
	assert.Equal(t, 6, m.Cells())

	assert.InDelta(t, 7, m.At("Plastic", "Landfill"), delta)
	assert.InDelta(t, 0, m.At("Plastic", "Composting"), delta)
	assert.InDelta(t, 6, m.At("Plastic", "Recycling"), delta)
	assert.InDelta(t, 8, m.At("Organic", "Landfill"), delta)
	assert.InDelta(t, 7, m.At("Organic", "Composting"), delta)
	assert.InDelta(t, 0, m.At("Organic", "Recycling"), delta)
	assert.Equal(t, 0.0, m.At("Glass", "Landfill"))
}

func TestDenseMatrix_Empty(t *testing.T) {
	m := DenseMatrix(GroupBy(nil, ByWasteTypeAndMethod, domain.FieldMES), domain.FieldMES)
	assert.Empty(t, m.Rows)
	assert.Empty(t, m.Cols)
	assert.Equal(t, 0, m.Cells())
}

func TestFirstSeen_IgnoresLaterRecords(t *testing.T) {
	firsts := FirstSeen(fixture(), func(r domain.Record) string { return r.City },
		domain.FieldPopulationDensity, domain.FieldLandfillCapacity)

	require.Len(t, firsts, 3)
	assert.Equal(t, "Delhi", firsts[0].Key)
	assert.Equal(t, 5000.0, firsts[0].Value(domain.FieldPopulationDensity))
	assert.Equal(t, 200000.0, firsts[0].Value(domain.FieldLandfillCapacity))
	assert.Equal(t, "Mumbai", firsts[1].Key)
	assert.Equal(t, "Atlantis", firsts[2].Key)
}

func TestHistogram(t *testing.T) {
	bins, err := Histogram([]float64{0, 9.99, 10, 25}, 10)
	require.NoError(t, err)
	require.Len(t, bins, 3)
	assert.Equal(t, Bin{Lower: 0, Upper: 10, Count: 2}, bins[0])
	assert.Equal(t, Bin{Lower: 10, Upper: 20, Count: 1}, bins[1])
	assert.Equal(t, Bin{Lower: 20, Upper: 30, Count: 1}, bins[2])

	for _, width := range []float64{0, -5} {
		bins, err := Histogram([]float64{1, 2}, width)
		assert.NoError(t, err)
		assert.Nil(t, bins)
	}
	bins, err = Histogram(nil, 10)
	assert.NoError(t, err)
	assert.Nil(t, bins)
}

func TestHistogram_BinLimit(t *testing.T) {
	// 124.875 = 999 * 0.125: ровно MaxHistogramBins корзин
	bins, err := Histogram([]float64{0, 124.875}, 0.125)
	require.NoError(t, err)
	require.Len(t, bins, MaxHistogramBins)
	assert.Equal(t, 1, bins[0].Count)
	assert.Equal(t, 1, bins[MaxHistogramBins-1].Count)

	_, err = Histogram([]float64{0, 125}, 0.125)
	assert.ErrorIs(t, err, ErrBinWidth)
}

func TestHistogram_RejectsExtremeWidths(t *testing.T) {
	values := []float64{0, 90}
	for _, width := range []float64{1e-300, 1e-7, math.SmallestNonzeroFloat64, math.NaN(), math.Inf(1), math.Inf(-1)} {
		assert.NotPanics(t, func() {
			bins, err := Histogram(values, width)
			assert.ErrorIs(t, err, ErrBinWidth, "width %v", width)
			assert.Nil(t, bins)
		})
	}
}

func TestOverview(t *testing.T) {
	out := Overview(fixture(), OverviewParams{Top: 2})

	// Delhi and Mumbai tie at 50; Delhi was seen first
	assert.Equal(t, []string{"Atlantis", "Delhi"}, out.TopRecycling.Labels)
	require.Len(t, out.TopRecycling.Series, 1)
	assert.InDeltaSlice(t, []float64{90, 50}, out.TopRecycling.Series[0].Data, delta)

	assert.Equal(t, []string{"Plastic", "Organic"}, out.WasteByType.Labels)
	assert.InDeltaSlice(t, []float64{450, 600}, out.WasteByType.Series[0].Data, delta)
}

func TestOverview_DefaultTopAndEmpty(t *testing.T) {
	out := Overview(fixture(), OverviewParams{})
	assert.Equal(t, []string{"Atlantis", "Delhi", "Mumbai"}, out.TopRecycling.Labels)

	empty := Overview(nil, OverviewParams{})
	assert.Empty(t, empty.TopRecycling.Labels)
	assert.Empty(t, empty.WasteByType.Series[0].Data)
}

func TestAwareness(t *testing.T) {
	out, err := Awareness(fixture(), AwarenessParams{Cities: []string{"Delhi", "Mumbai"}})
	require.NoError(t, err)

	require.Len(t, out.Scatter.Points, 2)
	assert.Equal(t, ScatterPoint{Label: "Delhi", X: 15, Y: 50}, out.Scatter.Points[0])
	assert.Equal(t, ScatterPoint{Label: "Mumbai", X: 15, Y: 50}, out.Scatter.Points[1])

	assert.Equal(t, []Bin{{Lower: 50, Upper: 60, Count: 2}}, out.RecyclingHistogram)
	assert.Equal(t, []Bin{{Lower: 15, Upper: 20, Count: 2}}, out.CampaignHistogram)
}

func TestAwareness_NoSelectionMeansAllCities(t *testing.T) {
	out, err := Awareness(fixture(), AwarenessParams{RateBinWidth: 100})
	require.NoError(t, err)
	assert.Len(t, out.Scatter.Points, 3)
	require.Len(t, out.RecyclingHistogram, 1)
	assert.Equal(t, 3, out.RecyclingHistogram[0].Count)
}

func TestAwareness_TinyBinWidth(t *testing.T) {
	records := []domain.Record{
		{City: "Delhi", RecyclingRate: 0, AwarenessCampaignsCount: 0},
		{City: "Mumbai", RecyclingRate: 90, AwarenessCampaignsCount: 30},
	}

	_, err := Awareness(records, AwarenessParams{RateBinWidth: 1e-300})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBinWidth)
	assert.Contains(t, err.Error(), "rate_bin_width")

	_, err = Awareness(records, AwarenessParams{CampaignBinWidth: 1e-7})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "campaign_bin_width")
}

func TestCost(t *testing.T) {
	out := Cost(fixture(), CostParams{})

	assert.Equal(t, []string{"Mumbai", "Delhi", "Atlantis"}, out.CostByCity.Labels)
	assert.InDeltaSlice(t, []float64{1750, 1500, 100}, out.CostByCity.Series[0].Data, delta)

	assert.Equal(t, []string{"Plastic", "Organic"}, out.RecyclingByType.Labels)
	assert.InDeltaSlice(t, []float64{60, 55}, out.RecyclingByType.Series[0].Data, delta)
}

func TestCost_WithSelections(t *testing.T) {
	out := Cost(fixture(), CostParams{Cities: []string{"Delhi"}, WasteTypes: []string{"Organic"}})

	assert.Equal(t, []string{"Delhi"}, out.CostByCity.Labels)
	assert.InDeltaSlice(t, []float64{2000}, out.CostByCity.Series[0].Data, delta)
	assert.Equal(t, []string{"Organic"}, out.RecyclingByType.Labels)
}

func TestEfficiency_DenseSeries(t *testing.T) {
	out := Efficiency(fixture(), EfficiencyParams{})

	assert.Equal(t, []string{"Plastic", "Organic"}, out.Chart.Labels)
	require.Len(t, out.Chart.Series, 3)
	assert.Equal(t, "Landfill", out.Chart.Series[0].Label)
	assert.InDeltaSlice(t, []float64{7, 8}, out.Chart.Series[0].Data, delta)
	assert.Equal(t, "Composting", out.Chart.Series[1].Label)
	assert.InDeltaSlice(t, []float64{0, 7}, out.Chart.Series[1].Data, delta)
	assert.Equal(t, "Recycling", out.Chart.Series[2].Label)
	assert.InDeltaSlice(t, []float64{6, 0}, out.Chart.Series[2].Data, delta)

	for _, s := range out.Chart.Series {
		assert.Len(t, s.Data, len(out.Chart.Labels))
	}
	assert.Equal(t, 6, out.Matrix.Cells())
}

func TestEfficiency_MethodSelection(t *testing.T) {
	out := Efficiency(fixture(), EfficiencyParams{Methods: []string{"Recycling"}})

	assert.Equal(t, []string{"Plastic"}, out.Chart.Labels)
	require.Len(t, out.Chart.Series, 1)
	assert.InDeltaSlice(t, []float64{6}, out.Chart.Series[0].Data, delta)
}

func TestLandfill(t *testing.T) {
	out := Landfill(fixture(), LandfillParams{})

	require.Len(t, out.Scatter.Points, 3)
	assert.Equal(t, ScatterPoint{Label: "Delhi", X: 5000, Y: 200000}, out.Scatter.Points[0])
	assert.Equal(t, ScatterPoint{Label: "Mumbai", X: 8000, Y: 300000}, out.Scatter.Points[1])

	assert.Equal(t, []string{"Mumbai", "Delhi", "Atlantis"}, out.ByDensity.Labels)
	assert.InDeltaSlice(t, []float64{300000, 200000, 10}, out.ByDensity.Series[0].Data, delta)
}

func TestLandfill_ShowAllOverridesSelection(t *testing.T) {
	selected := Landfill(fixture(), LandfillParams{Cities: []string{"Delhi"}})
	assert.Equal(t, []string{"Delhi"}, selected.ByDensity.Labels)

	all := Landfill(fixture(), LandfillParams{Cities: []string{"Delhi"}, ShowAll: true})
	assert.Len(t, all.Scatter.Points, 3)
}

func TestGeographic_SkipsUnknownCities(t *testing.T) {
	out := Geographic(fixture(), GeographicParams{WasteType: AllWasteTypes})

	assert.Equal(t, domain.MapCenter, out.Center)
	assert.Equal(t, domain.MapZoom, out.Zoom)
	require.Len(t, out.Markers, 2)

	delhi := out.Markers[0]
	assert.Equal(t, "Delhi", delhi.City)
	assert.InDelta(t, 300, delhi.TotalWaste, delta)
	assert.Equal(t, 5000.0, delhi.PopulationDensity)
	assert.InDelta(t, math.Sqrt(300)/50, delhi.Radius, delta)

	pos, ok := domain.LookupCity("Delhi")
	require.True(t, ok)
	assert.Equal(t, pos.Lat, delhi.Lat)
	assert.Equal(t, pos.Lon, delhi.Lon)

	assert.Equal(t, "Mumbai", out.Markers[1].City)
	assert.InDelta(t, 700, out.Markers[1].TotalWaste, delta)
}

func TestGeographic_WasteTypeSelection(t *testing.T) {
	out := Geographic(fixture(), GeographicParams{WasteType: "Plastic", Cities: []string{"Mumbai", "Atlantis"}})

	require.Len(t, out.Markers, 1)
	assert.Equal(t, "Mumbai", out.Markers[0].City)
	assert.InDelta(t, 300, out.Markers[0].TotalWaste, delta)
}

func TestMarkerRadius(t *testing.T) {
	assert.InDelta(t, 2.0, MarkerRadius(10000), delta)
	assert.Equal(t, 0.0, MarkerRadius(0))
	assert.Equal(t, 0.0, MarkerRadius(-4))
}

func TestTable_Paging(t *testing.T) {
	records := fixture()

	first := Table(records, TableParams{Page: 1, Limit: 2})
	assert.Equal(t, []string{"Delhi", "Delhi"}, cities(first.Rows))
	assert.Equal(t, 5, first.Total)
	assert.Equal(t, 5, first.Filtered)
	assert.Len(t, first.Columns, 11)

	last := Table(records, TableParams{Page: 3, Limit: 2})
	assert.Equal(t, []string{"Atlantis"}, cities(last.Rows))

	beyond := Table(records, TableParams{Page: 4, Limit: 2})
	assert.Empty(t, beyond.Rows)

	all := Table(records, TableParams{})
	assert.Len(t, all.Rows, 5)
	assert.Equal(t, 1, all.Page)
}

func TestTable_SearchAndFilters(t *testing.T) {
	out := Table(fixture(), TableParams{
		Predicates: PredicateSet{SearchText: "PLASTIC"},
		Page:       1,
		Limit:      25,
	})
	assert.Equal(t, 3, out.Filtered)
	assert.Equal(t, []string{"Delhi", "Mumbai", "Atlantis"}, cities(out.Rows))
}

func TestSummarize(t *testing.T) {
	s := Summarize(fixture())
	assert.Equal(t, 5, s.TotalRecords)
	assert.Equal(t, 3, s.TotalCities)
	assert.InDelta(t, 1050, s.TotalWaste, delta)
	assert.InDelta(t, 58, s.AvgRecyclingRate, delta)
	assert.InDelta(t, 7, s.AvgMES, delta)

	empty := Summarize(nil)
	assert.Equal(t, domain.DatasetSummary{}, empty)
}

func TestOptions_Sorted(t *testing.T) {
	opts := Options(fixture())
	assert.Equal(t, []string{"Atlantis", "Delhi", "Mumbai"}, opts.Cities)
	assert.Equal(t, []string{"Organic", "Plastic"}, opts.WasteTypes)
	assert.Equal(t, []string{"Composting", "Landfill", "Recycling"}, opts.DisposalMethods)
}
