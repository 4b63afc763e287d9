package analytics

import (
	"errors"
	"fmt"
	"math"

	"github.com/waste-analytics/internal/domain"
)

// GroupKey identifies a group: one field value, or an ordered pair of values.
type GroupKey struct {
	Primary   string
	Secondary string
}

func (k GroupKey) String() string {
	if k.Secondary == "" {
		return k.Primary
	}
	return k.Primary + "-" + k.Secondary
}

// KeyFunc derives the group key of a record.
type KeyFunc func(domain.Record) GroupKey

// ByCity groups by city.
func ByCity(r domain.Record) GroupKey { return GroupKey{Primary: r.City} }

// ByWasteType groups by waste type.
func ByWasteType(r domain.Record) GroupKey { return GroupKey{Primary: r.WasteType} }

// ByWasteTypeAndMethod groups by the ordered pair (waste type, disposal method).
func ByWasteTypeAndMethod(r domain.Record) GroupKey {
	return GroupKey{Primary: r.WasteType, Secondary: r.DisposalMethod}
}

// Bucket holds the accumulated totals of one group.
type Bucket struct {
	Key   GroupKey
	Count int
	sums  map[domain.Field]float64
}

// Sum returns the accumulated total of a field; fields never requested sum to 0.
func (b *Bucket) Sum(f domain.Field) float64 {
	if b == nil {
		return 0
	}
	return b.sums[f]
}

// Average returns sum/count of a field, or 0 for an empty or missing bucket.
func Average(b *Bucket, f domain.Field) float64 {
	if b == nil || b.Count == 0 {
		return 0
	}
	return b.sums[f] / float64(b.Count)
}

// Buckets is the grouping result. Keys iterate in first-seen order.
type Buckets struct {
	order []GroupKey
	index map[GroupKey]*Bucket
}

// Len returns the number of groups.
func (b *Buckets) Len() int { return len(b.order) }

// Keys returns group keys in first-seen order.
func (b *Buckets) Keys() []GroupKey {
	keys := make([]GroupKey, len(b.order))
	copy(keys, b.order)
	return keys
}

// Get returns the bucket for a key.
func (b *Buckets) Get(key GroupKey) (*Bucket, bool) {
	bucket, ok := b.index[key]
	return bucket, ok
}

// Each visits buckets in first-seen order.
func (b *Buckets) Each(fn func(*Bucket)) {
	for _, key := range b.order {
		fn(b.index[key])
	}
}

// GroupBy accumulates the requested fields per group.
func GroupBy(records []domain.Record, keyFn KeyFunc, fields ...domain.Field) *Buckets {
	out := &Buckets{
		order: make([]GroupKey, 0),
		index: make(map[GroupKey]*Bucket),
	}

	for _, r := range records {
		key := keyFn(r)
		bucket, ok := out.index[key]
		if !ok {
			bucket = &Bucket{Key: key, sums: make(map[domain.Field]float64, len(fields))}
			out.index[key] = bucket
			out.order = append(out.order, key)
		}
		bucket.Count++
		for _, f := range fields {
			bucket.sums[f] += finite(r.Value(f))
		}
	}

	return out
}

// Sum totals a field over all records.
func Sum(records []domain.Record, f domain.Field) float64 {
	var total float64
	for _, r := range records {
		total += finite(r.Value(f))
	}
	return total
}

// Mean averages a field over all records; 0 for no records.
func Mean(records []domain.Record, f domain.Field) float64 {
	if len(records) == 0 {
		return 0
	}
	return Sum(records, f) / float64(len(records))
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Matrix is a dense Rows x Cols grid of values. Values[i][j] belongs to
// (Rows[i], Cols[j]).
type Matrix struct {
	Rows   []string    `json:"rows"`
	Cols   []string    `json:"cols"`
	Values [][]float64 `json:"values"`
}

// Cells returns the number of cells.
func (m Matrix) Cells() int {
	return len(m.Rows) * len(m.Cols)
}

// At returns the value of (row, col), 0 when either is unknown.
func (m Matrix) At(row, col string) float64 {
	for i, r := range m.Rows {
		if r != row {
			continue
		}
		for j, c := range m.Cols {
			if c == col {
				return m.Values[i][j]
			}
		}
	}
	return 0
}

// DenseMatrix expands two-key buckets into a full grid of field averages.
// Axes are the distinct primary and secondary keys in first-seen order;
// combinations without data are 0.
func DenseMatrix(b *Buckets, f domain.Field) Matrix {
	var rows, cols []string
	seenRow := make(map[string]bool)
	seenCol := make(map[string]bool)
	for _, key := range b.order {
		if !seenRow[key.Primary] {
			seenRow[key.Primary] = true
			rows = append(rows, key.Primary)
		}
		if !seenCol[key.Secondary] {
			seenCol[key.Secondary] = true
			cols = append(cols, key.Secondary)
		}
	}
	return DenseMatrixOver(b, f, rows, cols)
}

// DenseMatrixOver builds the grid over explicit axes.
func DenseMatrixOver(b *Buckets, f domain.Field, rows, cols []string) Matrix {
	values := make([][]float64, len(rows))
	for i, row := range rows {
		values[i] = make([]float64, len(cols))
		for j, col := range cols {
			bucket, ok := b.index[GroupKey{Primary: row, Secondary: col}]
			if ok {
				values[i][j] = Average(bucket, f)
			}
		}
	}
	return Matrix{
		Rows:   nonNil(rows),
		Cols:   nonNil(cols),
		Values: values,
	}
}

// FirstValue holds the field values of the first record seen for a key.
type FirstValue struct {
	Key    string
	values map[domain.Field]float64
}

// Value returns the captured value of a field.
func (v FirstValue) Value(f domain.Field) float64 {
	return v.values[f]
}

// FirstSeen captures, per key, the requested fields of the first record with
// that key. Later records for the same key are ignored, not averaged.
func FirstSeen(records []domain.Record, keyFn func(domain.Record) string, fields ...domain.Field) []FirstValue {
	seen := make(map[string]bool)
	out := make([]FirstValue, 0)
	for _, r := range records {
		key := keyFn(r)
		if seen[key] {
			continue
		}
		seen[key] = true

		values := make(map[domain.Field]float64, len(fields))
		for _, f := range fields {
			values[f] = finite(r.Value(f))
		}
		out = append(out, FirstValue{Key: key, values: values})
	}
	return out
}

// Bin is one histogram interval [Lower, Upper).
type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// MaxHistogramBins bounds the bins one histogram may allocate.
const MaxHistogramBins = 1000

// ErrBinWidth is returned for a width that is not finite or that would need
// more than MaxHistogramBins bins to cover the values.
var ErrBinWidth = errors.New("invalid histogram bin width")

// Histogram counts values into bins of the given width, starting at the bin
// that contains the smallest value. A non-positive width yields no bins.
func Histogram(values []float64, width float64) ([]Bin, error) {
	if math.IsNaN(width) || math.IsInf(width, 0) {
		return nil, fmt.Errorf("%w: %v", ErrBinWidth, width)
	}
	if width <= 0 || len(values) == 0 {
		return nil, nil
	}

	minV, maxV := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		v = finite(v)
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}

	start := math.Floor(minV/width) * width
	// span в ширинах корзин считается во float: для крошечной ширины int переполняется
	span := math.Floor((maxV - start) / width)
	if math.IsNaN(span) || math.IsInf(span, 0) || span >= MaxHistogramBins {
		return nil, fmt.Errorf("%w: %g needs more than %d bins", ErrBinWidth, width, MaxHistogramBins)
	}
	n := int(span) + 1

	bins := make([]Bin, n)
	for i := range bins {
		bins[i].Lower = start + float64(i)*width
		bins[i].Upper = bins[i].Lower + width
	}
	for _, v := range values {
		idx := int(math.Floor((finite(v) - start) / width))
		if idx >= n {
			idx = n - 1
		}
		if idx < 0 {
			idx = 0
		}
		bins[idx].Count++
	}
	return bins, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
