package impute

import (
	"context"
	"fmt"

	j "github.com/wdm0006/imputer/pkg/frame"
)

// MostFrequent fills missing cells with the most frequent observed value of
// the column. Ties go to the smallest value.
type MostFrequent struct {
	Column string

	value  any
	fitted bool
}

func (t *MostFrequent) Name() string { return "impute_most_frequent" }

func (t *MostFrequent) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	return j.OnColumn(t.Name(), t.Column, t).Apply(ctx, f)
}

// Value returns the fitted fill value; false if unfitted or the fitted
// column had no present values.
func (t *MostFrequent) Value() (any, bool) { return t.value, t.fitted }

// Fit returns a new MostFrequent holding the mode of c.
func (t *MostFrequent) Fit(ctx context.Context, c j.Column) (j.ColumnTransformer, error) {
	out := &MostFrequent{Column: t.Column}
	switch col := c.(type) {
	case *j.StringColumn:
		out.value, out.fitted = mode(col.Len(), col.Get, func(a, b string) bool { return a < b })
	case *j.IntColumn:
		out.value, out.fitted = mode(col.Len(), col.Get, func(a, b int64) bool { return a < b })
	case *j.FloatColumn:
		out.value, out.fitted = mode(col.Len(), col.Get, func(a, b float64) bool { return a < b })
	case *j.BoolColumn:
		out.value, out.fitted = mode(col.Len(), col.Get, func(a, b bool) bool { return !a && b })
	default:
		return nil, fmt.Errorf("impute_most_frequent: %w: %s", ErrUnsupportedKind, c.Kind())
	}
	return out, nil
}

// Transform returns a copy of c with nulls set to the fitted value.
func (t *MostFrequent) Transform(ctx context.Context, c j.Column) (j.Column, error) {
	out := c.Clone()
	if !t.fitted {
		return out, nil
	}
	if err := fillNulls(out, t.value); err != nil {
		return nil, fmt.Errorf("impute_most_frequent: %w", err)
	}
	return out, nil
}

// mode returns the most frequent present value, breaking ties with less.
func mode[T comparable](n int, get func(int) (T, bool), less func(a, b T) bool) (any, bool) {
	counts := make(map[T]int)
	for i := 0; i < n; i++ {
		if v, ok := get(i); ok {
			counts[v]++
		}
	}
	var best T
	bestc := 0
	for v, cnt := range counts {
		if cnt > bestc || (cnt == bestc && less(v, best)) {
			best, bestc = v, cnt
		}
	}
	return best, bestc > 0
}
