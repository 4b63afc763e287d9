package analytics

import (
	"fmt"

	"github.com/waste-analytics/internal/domain"
)

// Ширина корзин гистограмм по умолчанию
const (
	DefaultRateBinWidth     = 10.0
	DefaultCampaignBinWidth = 5.0
)

// AwarenessParams - выбранные города и ширина корзин гистограмм
type AwarenessParams struct {
	Cities           []string
	RateBinWidth     float64
	CampaignBinWidth float64
}

// AwarenessOutput - средние показатели кампаний и переработки по городам
type AwarenessOutput struct {
	Scatter            ScatterChart `json:"scatter"`
	RecyclingHistogram []Bin        `json:"recycling_histogram"`
	CampaignHistogram  []Bin        `json:"campaign_histogram"`
}

// Awareness plots per-city average campaign count against average recycling
// rate, restricted to the selected cities (none selected means all).
// Histograms bin the per-city averages; a zero width uses the default.
// A width rejected by Histogram is reported as an error wrapping ErrBinWidth.
func Awareness(records []domain.Record, params AwarenessParams) (AwarenessOutput, error) {
	selected := Apply(records, PredicateSet{Cities: params.Cities})
	byCity := GroupBy(selected, ByCity, domain.FieldAwarenessCampaignsCount, domain.FieldRecyclingRate)

	points := make([]ScatterPoint, 0, byCity.Len())
	rates := make([]float64, 0, byCity.Len())
	campaigns := make([]float64, 0, byCity.Len())
	byCity.Each(func(b *Bucket) {
		x := Average(b, domain.FieldAwarenessCampaignsCount)
		y := Average(b, domain.FieldRecyclingRate)
		points = append(points, ScatterPoint{Label: b.Key.Primary, X: x, Y: y})
		campaigns = append(campaigns, x)
		rates = append(rates, y)
	})

	rateBins, err := Histogram(rates, orDefault(params.RateBinWidth, DefaultRateBinWidth))
	if err != nil {
		return AwarenessOutput{}, fmt.Errorf("rate_bin_width: %w", err)
	}
	campaignBins, err := Histogram(campaigns, orDefault(params.CampaignBinWidth, DefaultCampaignBinWidth))
	if err != nil {
		return AwarenessOutput{}, fmt.Errorf("campaign_bin_width: %w", err)
	}

	return AwarenessOutput{
		Scatter: ScatterChart{
			XLabel: "Average Awareness Campaigns",
			YLabel: "Average Recycling Rate (%)",
			Points: points,
		},
		RecyclingHistogram: nonNilBins(rateBins),
		CampaignHistogram:  nonNilBins(campaignBins),
	}, nil
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

func nonNilBins(b []Bin) []Bin {
	if b == nil {
		return []Bin{}
	}
	return b
}
