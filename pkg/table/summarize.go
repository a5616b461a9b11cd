package table

import (
	"fmt"
	"sort"
)

// Aggregation names an output column and the aggregate that fills it.
// By default a missing value anywhere in the aggregated column's group makes
// the result missing; IgnoreMissing opts that aggregate into dropping
// missing cells instead. Count is over rows and is unaffected by either
// policy.
type Aggregation struct {
	name          string
	col           string
	fn            func([]Value) (Value, error)
	countsRows    bool
	ignoreMissing bool
}

// AggOption adjusts an Aggregation.
type AggOption func(*Aggregation)

// IgnoreMissing makes the aggregate skip missing cells instead of
// propagating them into a missing result.
func IgnoreMissing() AggOption {
	return func(a *Aggregation) { a.ignoreMissing = true }
}

// Count counts the rows in each group.
func Count(name string) Aggregation {
	return Aggregation{name: name, countsRows: true}
}

// Sum aggregates a numeric column by summation.
func Sum(name, col string, opts ...AggOption) Aggregation {
	return newAgg(name, col, aggSum, opts)
}

// Mean aggregates a numeric column by arithmetic mean.
func Mean(name, col string, opts ...AggOption) Aggregation {
	return newAgg(name, col, aggMean, opts)
}

// Median aggregates a numeric column by median; the median of an even
// count is the mean of the two middle values.
func Median(name, col string, opts ...AggOption) Aggregation {
	return newAgg(name, col, aggMedian, opts)
}

// Min aggregates any column by its smallest value.
func Min(name, col string, opts ...AggOption) Aggregation {
	return newAgg(name, col, aggMin, opts)
}

// Max aggregates any column by its largest value.
func Max(name, col string, opts ...AggOption) Aggregation {
	return newAgg(name, col, aggMax, opts)
}

// First aggregates any column by its first value in row order.
func First(name, col string, opts ...AggOption) Aggregation {
	return newAgg(name, col, aggFirst, opts)
}

// NDistinct aggregates any column by its number of distinct values.
// Missing markers count as one shared value when not ignored.
func NDistinct(name, col string, opts ...AggOption) Aggregation {
	return newAgg(name, col, aggNDistinct, opts)
}

func newAgg(name, col string, fn func([]Value) (Value, error), opts []AggOption) Aggregation {
	a := Aggregation{name: name, col: col, fn: fn}
	for _, o := range opts {
		o(&a)
	}
	return a
}

// Summarize collapses the table to one row per group, or a single row when
// ungrouped. Output columns are the grouping keys followed by the aggregate
// columns in call order; output rows are ordered by key value ascending,
// lexicographic across multiple keys, with missing keys last.
func (t *Table) Summarize(aggs ...Aggregation) (*Table, error) {
	parts, _, _, err := t.partitionRows()
	if err != nil {
		return nil, err
	}
	if t.Grouped() {
		sort.SliceStable(parts, func(a, b int) bool {
			ka, kb := parts[a].key, parts[b].key
			for k := range ka {
				c, _ := ka[k].Compare(kb[k])
				if c != 0 {
					return c < 0
				}
			}
			return false
		})
	}

	cols := t.Groups()
	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		seen[c] = true
	}
	for _, a := range aggs {
		if a.name == "" {
			return nil, fmt.Errorf("aggregation name: %w", ErrInvalidName)
		}
		if seen[a.name] {
			return nil, fmt.Errorf("aggregation %q: %w", a.name, ErrDuplicateColumn)
		}
		seen[a.name] = true
		cols = append(cols, a.name)
		if a.countsRows {
			continue
		}
		if _, err := t.colIndex(a.col); err != nil {
			return nil, fmt.Errorf("aggregation %q: %w", a.name, err)
		}
	}

	rows := make([][]Value, 0, len(parts))
	for _, p := range parts {
		out := append([]Value(nil), p.key...)
		for _, a := range aggs {
			v, err := t.applyAgg(a, p.rows)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		rows = append(rows, out)
	}
	return New(cols, rows)
}

func (t *Table) applyAgg(a Aggregation, rowIdx []int) (Value, error) {
	if a.countsRows {
		return Number(float64(len(rowIdx))), nil
	}
	j, err := t.colIndex(a.col)
	if err != nil {
		return Missing(), fmt.Errorf("aggregation %q: %w", a.name, err)
	}
	vals := make([]Value, 0, len(rowIdx))
	for _, i := range rowIdx {
		v := t.rows[i][j]
		if v.IsMissing() {
			if !a.ignoreMissing {
				return Missing(), nil
			}
			continue
		}
		vals = append(vals, v)
	}
	if len(vals) == 0 {
		return Missing(), nil
	}
	v, err := a.fn(vals)
	if err != nil {
		return Missing(), fmt.Errorf("aggregation %q over column %q: %w", a.name, a.col, err)
	}
	return v, nil
}

// Aggregate kernels. Inputs are non-empty and contain no missing markers.

func aggSum(vals []Value) (Value, error) {
	var sum float64
	for _, v := range vals {
		if v.Kind() != KindNumber {
			return Missing(), fmt.Errorf("sum of %s: %w", v.Kind(), ErrTypeMismatch)
		}
		sum += v.Num()
	}
	return Number(sum), nil
}

func aggMean(vals []Value) (Value, error) {
	s, err := aggSum(vals)
	if err != nil {
		return Missing(), err
	}
	return Number(s.Num() / float64(len(vals))), nil
}

func aggMedian(vals []Value) (Value, error) {
	nums := make([]float64, len(vals))
	for i, v := range vals {
		if v.Kind() != KindNumber {
			return Missing(), fmt.Errorf("median of %s: %w", v.Kind(), ErrTypeMismatch)
		}
		nums[i] = v.Num()
	}
	sort.Float64s(nums)
	m := len(nums) / 2
	if len(nums)%2 == 1 {
		return Number(nums[m]), nil
	}
	return Number((nums[m-1] + nums[m]) / 2), nil
}

func aggMin(vals []Value) (Value, error) {
	best := vals[0]
	for _, v := range vals[1:] {
		c, err := v.Compare(best)
		if err != nil {
			return Missing(), err
		}
		if c < 0 {
			best = v
		}
	}
	return best, nil
}

func aggMax(vals []Value) (Value, error) {
	best := vals[0]
	for _, v := range vals[1:] {
		c, err := v.Compare(best)
		if err != nil {
			return Missing(), err
		}
		if c > 0 {
			best = v
		}
	}
	return best, nil
}

func aggFirst(vals []Value) (Value, error) {
	return vals[0], nil
}

func aggNDistinct(vals []Value) (Value, error) {
	distinct := make(map[string]bool, len(vals))
	for _, v := range vals {
		distinct[v.encode()] = true
	}
	return Number(float64(len(distinct))), nil
}
