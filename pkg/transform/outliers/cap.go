// Package outliers clamps numeric columns into a range.
package outliers

import (
	"context"
	"fmt"

	j "github.com/wdm0006/imputer/pkg/frame"
)

// Cap clamps present values of a numeric column into [Min, Max]. A nil bound
// is open. Missing cells are left alone, so Cap is usually run before an
// imputer whose range matches the cap.
type Cap struct {
	Column string
	Min    *float64
	Max    *float64
}

func (t *Cap) Name() string { return "cap_range" }

func (t *Cap) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	return j.OnColumn(t.Name(), t.Column, t).Apply(ctx, f)
}

func (t *Cap) Fit(ctx context.Context, c j.Column) (j.ColumnTransformer, error) { return t, nil }

func (t *Cap) Transform(ctx context.Context, c j.Column) (j.Column, error) {
	out := c.Clone()
	switch col := out.(type) {
	case *j.FloatColumn:
		for i := 0; i < col.Len(); i++ {
			if v, ok := col.Get(i); ok {
				col.Set(i, t.clamp(v))
			}
		}
	case *j.IntColumn:
		for i := 0; i < col.Len(); i++ {
			if v, ok := col.Get(i); ok {
				col.Set(i, int64(t.clamp(float64(v))))
			}
		}
	default:
		return nil, fmt.Errorf("cap_range: column %s is %s, not numeric", c.Name(), c.Kind())
	}
	return out, nil
}

func (t *Cap) clamp(v float64) float64 {
	if t.Min != nil && v < *t.Min {
		return *t.Min
	}
	if t.Max != nil && v > *t.Max {
		return *t.Max
	}
	return v
}
