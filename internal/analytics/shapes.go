package analytics

// Series is one named data series aligned with the chart labels.
type Series struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

// BarChart - категории по оси X и одна или несколько серий значений
type BarChart struct {
	Labels []string `json:"labels"`
	Series []Series `json:"series"`
}

// ScatterPoint - точка диаграммы рассеяния, подписанная ключом группы
type ScatterPoint struct {
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// ScatterChart - набор точек с подписями осей
type ScatterChart struct {
	XLabel string         `json:"x_label"`
	YLabel string         `json:"y_label"`
	Points []ScatterPoint `json:"points"`
}

func newBarChart(seriesLabel string, labels []string, data []float64) BarChart {
	return BarChart{
		Labels: nonNil(labels),
		Series: []Series{{Label: seriesLabel, Data: nonNilFloats(data)}},
	}
}

func nonNilFloats(s []float64) []float64 {
	if s == nil {
		return []float64{}
	}
	return s
}
