// Package validate holds pipeline steps that check a column without
// changing it. They run after imputation to assert what the fill promised.
package validate

import (
	"context"
	"errors"
	"fmt"

	j "github.com/wdm0006/imputer/pkg/frame"
)

var ErrInvalid = errors.New("validation failed")

// Complete fails when the column still has missing cells.
type Complete struct {
	Column string
}

func (t *Complete) Name() string { return "validate_complete" }

func (t *Complete) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	if n := col.NullCount(); n > 0 {
		return f, fmt.Errorf("validate_complete: column %s: %w: %d missing values", t.Column, ErrInvalid, n)
	}
	return f, nil
}

// Range fails when a present numeric value lies outside [Min, Max]. A nil
// bound is open.
type Range struct {
	Column string
	Min    *float64
	Max    *float64
}

func (t *Range) Name() string { return "validate_range" }

func (t *Range) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	var bad int
	check := func(v float64) {
		if (t.Min != nil && v < *t.Min) || (t.Max != nil && v > *t.Max) {
			bad++
		}
	}
	switch c := col.(type) {
	case *j.FloatColumn:
		for i := 0; i < c.Len(); i++ {
			if v, ok := c.Get(i); ok {
				check(v)
			}
		}
	case *j.IntColumn:
		for i := 0; i < c.Len(); i++ {
			if v, ok := c.Get(i); ok {
				check(float64(v))
			}
		}
	default:
		return f, fmt.Errorf("validate_range: column %s is %s, not numeric", t.Column, col.Kind())
	}
	if bad > 0 {
		return f, fmt.Errorf("validate_range: column %s: %w: %d out-of-range values", t.Column, ErrInvalid, bad)
	}
	return f, nil
}

// InSet fails when a present value of a string column is not one of Values.
type InSet struct {
	Column string
	Values map[string]struct{}
}

func NewInSet(col string, vals []string) *InSet {
	m := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		m[v] = struct{}{}
	}
	return &InSet{Column: col, Values: m}
}

func (t *InSet) Name() string { return "validate_in" }

func (t *InSet) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	sc, ok := col.(*j.StringColumn)
	if !ok {
		return f, fmt.Errorf("validate_in: column %s is %s, not string", t.Column, col.Kind())
	}
	var bad int
	for i := 0; i < sc.Len(); i++ {
		if v, ok := sc.Get(i); ok {
			if _, allowed := t.Values[v]; !allowed {
				bad++
			}
		}
	}
	if bad > 0 {
		return f, fmt.Errorf("validate_in: column %s: %w: %d values outside allowed set", t.Column, ErrInvalid, bad)
	}
	return f, nil
}
