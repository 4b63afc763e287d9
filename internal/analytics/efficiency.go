package analytics

import (
	"github.com/waste-analytics/internal/domain"
)

// EfficiencyParams - выбранные типы отходов и способы утилизации
type EfficiencyParams struct {
	WasteTypes []string
	Methods    []string
}

// EfficiencyOutput - средний MES по паре (тип отходов, способ утилизации).
// Chart содержит по серии на способ, Matrix - ту же сетку строками по типам.
type EfficiencyOutput struct {
	Chart  BarChart `json:"chart"`
	Matrix Matrix   `json:"matrix"`
}

// Efficiency groups the selected records by (waste type, disposal method)
// and returns a dense grid of average MES: one label per waste type, one
// series per method, 0 where a combination has no records.
func Efficiency(records []domain.Record, params EfficiencyParams) EfficiencyOutput {
	selected := Apply(records, PredicateSet{WasteTypes: params.WasteTypes, DisposalMethods: params.Methods})

	pairs := GroupBy(selected, ByWasteTypeAndMethod, domain.FieldMES)
	matrix := DenseMatrix(pairs, domain.FieldMES)

	series := make([]Series, 0, len(matrix.Cols))
	for j, method := range matrix.Cols {
		data := make([]float64, len(matrix.Rows))
		for i := range matrix.Rows {
			data[i] = matrix.Values[i][j]
		}
		series = append(series, Series{Label: method, Data: data})
	}

	return EfficiencyOutput{
		Chart: BarChart{
			Labels: matrix.Rows,
			Series: series,
		},
		Matrix: matrix,
	}
}
