package impute

import (
	"context"
	"fmt"
	"sort"

	j "github.com/wdm0006/imputer/pkg/frame"
)

// Median fills missing numeric cells with the median of the present ones.
// With an even count the two middle values are averaged; int columns use
// integer division.
type Median struct {
	Column string

	median float64
	fitted bool
}

func (t *Median) Name() string { return "impute_median" }

func (t *Median) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	return j.OnColumn(t.Name(), t.Column, t).Apply(ctx, f)
}

func (t *Median) Fit(ctx context.Context, c j.Column) (j.ColumnTransformer, error) {
	vals, err := presentFloats(c)
	if err != nil {
		return nil, fmt.Errorf("impute_median: %w", err)
	}
	out := &Median{Column: t.Column}
	if len(vals) == 0 {
		return out, nil
	}
	sort.Float64s(vals)
	mid := len(vals) / 2
	switch {
	case len(vals)%2 == 1:
		out.median = vals[mid]
	case c.Kind() == j.KindInt:
		out.median = float64((int64(vals[mid-1]) + int64(vals[mid])) / 2)
	default:
		out.median = (vals[mid-1] + vals[mid]) / 2
	}
	out.fitted = true
	return out, nil
}

func (t *Median) Transform(ctx context.Context, c j.Column) (j.Column, error) {
	out := c.Clone()
	if !t.fitted {
		return out, nil
	}
	if err := fillNulls(out, t.median); err != nil {
		return nil, fmt.Errorf("impute_median: %w", err)
	}
	return out, nil
}
