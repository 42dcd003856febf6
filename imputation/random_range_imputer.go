// Package imputation fills missing values directly on golearn instances,
// for callers that already hold their data as base.DenseInstances.
package imputation

import (
	"context"
	"fmt"
	"math"

	"github.com/sjwhitworth/golearn/base"

	j "github.com/wdm0006/imputer/pkg/frame"
	"github.com/wdm0006/imputer/pkg/transform/impute"
)

// RandomRangeImputer fills the NaN cells of one float attribute with
// integers drawn by Imputer.
type RandomRangeImputer struct {
	Attribute string
	Imputer   *impute.RandomRange
}

// NewRandomRangeImputer builds an imputer for the named attribute.
func NewRandomRangeImputer(attribute string, opts ...impute.Option) (*RandomRangeImputer, error) {
	r, err := impute.NewRandomRange(opts...)
	if err != nil {
		return nil, err
	}
	return &RandomRangeImputer{Attribute: attribute, Imputer: r}, nil
}

// Transform returns a copy of X with the attribute's missing cells filled.
// X is not modified. An absent attribute returns the copy unchanged.
func (imputer *RandomRangeImputer) Transform(X *base.DenseInstances) (*base.DenseInstances, error) {
	out := base.NewDenseCopy(X)
	var attr base.Attribute
	for _, a := range out.AllAttributes() {
		if a.GetName() == imputer.Attribute {
			attr = a
			break
		}
	}
	if attr == nil {
		return out, nil
	}
	if attr.GetType() != base.Float64Type {
		return nil, fmt.Errorf("attribute %s: %w", imputer.Attribute, impute.ErrUnsupportedKind)
	}
	spec, err := out.GetAttribute(attr)
	if err != nil {
		return nil, err
	}

	_, rows := out.Size()
	vals := make([]float64, rows)
	for r := 0; r < rows; r++ {
		vals[r] = base.UnpackBytesToFloat(out.Get(spec, r))
	}
	filled, err := imputer.Imputer.Transform(context.Background(), j.NewFloatColumnFrom(imputer.Attribute, vals, nil))
	if err != nil {
		return nil, err
	}
	ic, ok := filled.(*j.IntColumn)
	if !ok {
		// nothing was missing
		return out, nil
	}
	for r := 0; r < rows; r++ {
		if !math.IsNaN(vals[r]) {
			continue
		}
		v, _ := ic.Get(r)
		out.Set(spec, r, base.PackFloatToBytes(float64(v)))
	}
	return out, nil
}
