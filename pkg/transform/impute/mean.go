package impute

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/stat"

	j "github.com/wdm0006/imputer/pkg/frame"
)

// Mean fills missing numeric cells with the mean of the present ones.
// Int columns get the mean rounded half up.
type Mean struct {
	Column string

	mean   float64
	fitted bool
}

func (t *Mean) Name() string { return "impute_mean" }

func (t *Mean) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	return j.OnColumn(t.Name(), t.Column, t).Apply(ctx, f)
}

func (t *Mean) Fit(ctx context.Context, c j.Column) (j.ColumnTransformer, error) {
	vals, err := presentFloats(c)
	if err != nil {
		return nil, fmt.Errorf("impute_mean: %w", err)
	}
	out := &Mean{Column: t.Column}
	if len(vals) > 0 {
		out.mean, out.fitted = stat.Mean(vals, nil), true
	}
	return out, nil
}

func (t *Mean) Transform(ctx context.Context, c j.Column) (j.Column, error) {
	out := c.Clone()
	if !t.fitted {
		return out, nil
	}
	v := t.mean
	if c.Kind() == j.KindInt {
		v += 0.5
	}
	if err := fillNulls(out, v); err != nil {
		return nil, fmt.Errorf("impute_mean: %w", err)
	}
	return out, nil
}

// presentFloats collects the present values of a numeric column.
func presentFloats(c j.Column) ([]float64, error) {
	vals := make([]float64, 0, c.Len())
	switch col := c.(type) {
	case *j.FloatColumn:
		for i := 0; i < col.Len(); i++ {
			if v, ok := col.Get(i); ok {
				vals = append(vals, v)
			}
		}
	case *j.IntColumn:
		for i := 0; i < col.Len(); i++ {
			if v, ok := col.Get(i); ok {
				vals = append(vals, float64(v))
			}
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, c.Kind())
	}
	return vals, nil
}
