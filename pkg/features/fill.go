// Package features holds single-column fill helpers for passenger-style
// datasets: random integer fill for numeric columns and most-frequent fill
// for categorical ones.
package features

import (
	"context"

	j "github.com/wdm0006/imputer/pkg/frame"
	imp "github.com/wdm0006/imputer/pkg/transform/impute"
)

const (
	AgeColumn      = "Age"
	EmbarkedColumn = "Embarked"
)

// FillNumericColumn fills the named numeric column with random integers
// (see impute.RandomRange) and returns just that column. f is not modified.
func FillNumericColumn(ctx context.Context, f *j.Frame, column string, opts ...imp.Option) (j.Column, error) {
	col, err := f.Column(column)
	if err != nil {
		return nil, err
	}
	r, err := imp.NewRandomRange(opts...)
	if err != nil {
		return nil, err
	}
	return j.FitTransform(ctx, r, col)
}

// FillCategoricalColumn fills the named column with its most frequent value
// and returns just that column. f is not modified.
func FillCategoricalColumn(ctx context.Context, f *j.Frame, column string) (j.Column, error) {
	col, err := f.Column(column)
	if err != nil {
		return nil, err
	}
	return j.FitTransform(ctx, &imp.MostFrequent{Column: column}, col)
}

// AgeImputer returns a random-range imputer for ages, [1, 80] by default.
func AgeImputer(opts ...imp.Option) (*imp.RandomRange, error) {
	return imp.NewRandomRange(opts...)
}

// EmbarkedImputer returns a most-frequent imputer for the port of embarkation.
func EmbarkedImputer() *imp.MostFrequent {
	return &imp.MostFrequent{Column: EmbarkedColumn}
}

// FillAge is FillNumericColumn over the Age column.
func FillAge(ctx context.Context, f *j.Frame, opts ...imp.Option) (j.Column, error) {
	return FillNumericColumn(ctx, f, AgeColumn, opts...)
}

// FillEmbarked is FillCategoricalColumn over the Embarked column.
func FillEmbarked(ctx context.Context, f *j.Frame) (j.Column, error) {
	return FillCategoricalColumn(ctx, f, EmbarkedColumn)
}
