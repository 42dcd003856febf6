// Package golearn converts between Frames and golearn DenseInstances.
// Numeric columns become float attributes with NaN for missing cells; other
// columns become categorical attributes with MissingCategory for missing cells.
package golearn

import (
	"fmt"
	"math"

	"github.com/sjwhitworth/golearn/base"

	j "github.com/wdm0006/imputer/pkg/frame"
)

// MissingCategory stands in for a missing cell of a categorical attribute.
const MissingCategory = "NaN"

// ToDenseInstances converts a Frame into golearn DenseInstances. class names
// the class attribute; empty means the last column.
func ToDenseInstances(f *j.Frame, class string) (*base.DenseInstances, error) {
	cols := f.Schema().Columns
	attrs := make([]base.Attribute, len(cols))
	classIdx := len(cols) - 1
	for i, cs := range cols {
		switch cs.Type {
		case j.KindFloat, j.KindInt:
			attrs[i] = base.NewFloatAttribute(cs.Name)
		default:
			ca := new(base.CategoricalAttribute)
			ca.SetName(cs.Name)
			attrs[i] = ca
		}
		if class != "" && cs.Name == class {
			classIdx = i
		}
	}
	if class != "" && (classIdx < 0 || cols[classIdx].Name != class) {
		return nil, fmt.Errorf("class attribute %s: %w", class, j.ErrColumnNotFound)
	}

	inst := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, len(attrs))
	for i, a := range attrs {
		specs[i] = inst.AddAttribute(a)
	}
	if err := inst.Extend(f.Rows()); err != nil {
		return nil, err
	}

	nan := base.PackFloatToBytes(math.NaN())
	for c, cs := range cols {
		col, _ := f.ColumnByName(cs.Name)
		for r := 0; r < f.Rows(); r++ {
			switch tc := col.(type) {
			case *j.FloatColumn:
				if v, ok := tc.Get(r); ok {
					inst.Set(specs[c], r, base.PackFloatToBytes(v))
				} else {
					inst.Set(specs[c], r, nan)
				}
			case *j.IntColumn:
				if v, ok := tc.Get(r); ok {
					inst.Set(specs[c], r, base.PackFloatToBytes(float64(v)))
				} else {
					inst.Set(specs[c], r, nan)
				}
			default:
				v := MissingCategory
				if !col.IsNull(r) {
					v = j.FormatValue(col, r)
				}
				inst.Set(specs[c], r, attrs[c].GetSysValFromString(v))
			}
		}
	}
	if classIdx >= 0 {
		if err := inst.AddClassAttribute(attrs[classIdx]); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// FromDenseInstances converts golearn instances into a Frame. NaN floats and
// MissingCategory values come back as missing cells.
func FromDenseInstances(inst base.FixedDataGrid) (*j.Frame, error) {
	attrs := inst.AllAttributes()
	schema := j.Schema{Columns: make([]j.ColumnSchema, len(attrs))}
	specs := make([]base.AttributeSpec, len(attrs))
	for i, a := range attrs {
		k := j.KindString
		if a.GetType() == base.Float64Type {
			k = j.KindFloat
		}
		schema.Columns[i] = j.ColumnSchema{Name: a.GetName(), Type: k, Nullable: true}
		spec, err := inst.GetAttribute(a)
		if err != nil {
			return nil, err
		}
		specs[i] = spec
	}

	f := j.NewFrame(schema)
	_, nrows := inst.Size()
	for r := 0; r < nrows; r++ {
		f.AppendNullRow()
		for c, cs := range schema.Columns {
			raw := inst.Get(specs[c], r)
			if cs.Type == j.KindFloat {
				// NaN is stored as null by the float column
				_ = f.SetCell(r, cs.Name, base.UnpackBytesToFloat(raw))
				continue
			}
			if v := attrs[c].GetStringFromSysVal(raw); v != MissingCategory {
				_ = f.SetCell(r, cs.Name, v)
			}
		}
	}
	return f, nil
}
