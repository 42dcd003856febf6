package impute

import (
	"context"
	"fmt"
	"math"

	j "github.com/wdm0006/imputer/pkg/frame"
)

// Constant fills missing cells with a fixed value.
type Constant struct {
	Column string
	// use any; will be coerced per column kind
	Value any
}

func (t *Constant) Name() string { return "impute_constant" }

func (t *Constant) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	return j.OnColumn(t.Name(), t.Column, t).Apply(ctx, f)
}

func (t *Constant) Fit(ctx context.Context, c j.Column) (j.ColumnTransformer, error) {
	return t, nil
}

func (t *Constant) Transform(ctx context.Context, c j.Column) (j.Column, error) {
	out := c.Clone()
	if err := fillNulls(out, t.Value); err != nil {
		return nil, fmt.Errorf("impute_constant: %w", err)
	}
	return out, nil
}

// fillNulls sets every null cell of c to v, coerced to the column kind.
func fillNulls(c j.Column, v any) error {
	switch col := c.(type) {
	case *j.FloatColumn:
		x, ok := asFloat(v)
		if !ok || math.IsNaN(x) {
			return fmt.Errorf("%w: cannot fill float column %s with %T", ErrUnsupportedKind, c.Name(), v)
		}
		for _, i := range missingRows(col) {
			col.Set(i, x)
		}
	case *j.IntColumn:
		x, ok := asFloat(v)
		if !ok || math.IsNaN(x) {
			return fmt.Errorf("%w: cannot fill int column %s with %T", ErrUnsupportedKind, c.Name(), v)
		}
		for _, i := range missingRows(col) {
			col.Set(i, int64(x))
		}
	case *j.StringColumn:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: cannot fill string column %s with %T", ErrUnsupportedKind, c.Name(), v)
		}
		for _, i := range missingRows(col) {
			col.Set(i, s)
		}
	case *j.BoolColumn:
		b, ok := v.(bool)
		if !ok {
			return fmt.Errorf("%w: cannot fill bool column %s with %T", ErrUnsupportedKind, c.Name(), v)
		}
		for _, i := range missingRows(col) {
			col.Set(i, b)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedKind, c.Kind())
	}
	return nil
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	}
	return 0, false
}
