package frame

import (
	"math"
	"time"
)

// Kind enumerates supported logical types.
type Kind int

const (
	KindInvalid Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindTime:
		return "time"
	default:
		return "invalid"
	}
}

// Column is a typed, nullable, index-addressable sequence of values.
// A null cell is the missing-value marker; it is distinct from every
// value the column can hold.
type Column interface {
	Name() string
	Kind() Kind
	Len() int
	IsNull(i int) bool
	SetNull(i int)
	NullCount() int
	// Clone returns an independent copy sharing no storage.
	Clone() Column
}

func countNulls(nulls []bool) int {
	n := 0
	for _, null := range nulls {
		if null {
			n++
		}
	}
	return n
}

// nullMask turns an optional "present" slice into a null mask.
func nullMask(n int, valid []bool) []bool {
	nulls := make([]bool, n)
	if valid == nil {
		return nulls
	}
	for i := range nulls {
		nulls[i] = i >= len(valid) || !valid[i]
	}
	return nulls
}

type BoolColumn struct {
	name  string
	data  []bool
	nulls []bool
}

func NewBoolColumn(name string, n int) *BoolColumn {
	return &BoolColumn{name: name, data: make([]bool, n), nulls: make([]bool, n)}
}
func (c *BoolColumn) Name() string           { return c.name }
func (c *BoolColumn) Kind() Kind             { return KindBool }
func (c *BoolColumn) Len() int               { return len(c.data) }
func (c *BoolColumn) IsNull(i int) bool      { return c.nulls[i] }
func (c *BoolColumn) SetNull(i int)          { c.nulls[i] = true }
func (c *BoolColumn) NullCount() int         { return countNulls(c.nulls) }
func (c *BoolColumn) Get(i int) (bool, bool) { return c.data[i], !c.nulls[i] }
func (c *BoolColumn) Set(i int, v bool)      { c.data[i] = v; c.nulls[i] = false }
func (c *BoolColumn) AppendNull()            { c.data = append(c.data, false); c.nulls = append(c.nulls, true) }
func (c *BoolColumn) Append(v bool)          { c.data = append(c.data, v); c.nulls = append(c.nulls, false) }
func (c *BoolColumn) Clone() Column {
	return &BoolColumn{name: c.name, data: append([]bool(nil), c.data...), nulls: append([]bool(nil), c.nulls...)}
}

type IntColumn struct {
	name  string
	data  []int64
	nulls []bool
}

func NewIntColumn(name string, n int) *IntColumn {
	return &IntColumn{name: name, data: make([]int64, n), nulls: make([]bool, n)}
}

// NewIntColumnFrom builds a column from values; valid[i] == false marks row i
// missing. A nil valid slice means every value is present.
func NewIntColumnFrom(name string, vals []int64, valid []bool) *IntColumn {
	return &IntColumn{name: name, data: append([]int64(nil), vals...), nulls: nullMask(len(vals), valid)}
}
func (c *IntColumn) Name() string            { return c.name }
func (c *IntColumn) Kind() Kind              { return KindInt }
func (c *IntColumn) Len() int                { return len(c.data) }
func (c *IntColumn) IsNull(i int) bool       { return c.nulls[i] }
func (c *IntColumn) SetNull(i int)           { c.nulls[i] = true }
func (c *IntColumn) NullCount() int          { return countNulls(c.nulls) }
func (c *IntColumn) Get(i int) (int64, bool) { return c.data[i], !c.nulls[i] }
func (c *IntColumn) Set(i int, v int64)      { c.data[i] = v; c.nulls[i] = false }
func (c *IntColumn) AppendNull()             { c.data = append(c.data, 0); c.nulls = append(c.nulls, true) }
func (c *IntColumn) Append(v int64)          { c.data = append(c.data, v); c.nulls = append(c.nulls, false) }
func (c *IntColumn) Clone() Column {
	return &IntColumn{name: c.name, data: append([]int64(nil), c.data...), nulls: append([]bool(nil), c.nulls...)}
}

// FloatColumn treats NaN as missing: storing NaN through Set or Append marks
// the cell null.
type FloatColumn struct {
	name  string
	data  []float64
	nulls []bool
}

func NewFloatColumn(name string, n int) *FloatColumn {
	return &FloatColumn{name: name, data: make([]float64, n), nulls: make([]bool, n)}
}

// NewFloatColumnFrom builds a column from values. NaN values and rows with
// valid[i] == false are missing.
func NewFloatColumnFrom(name string, vals []float64, valid []bool) *FloatColumn {
	c := &FloatColumn{name: name, data: append([]float64(nil), vals...), nulls: nullMask(len(vals), valid)}
	for i, v := range c.data {
		if math.IsNaN(v) {
			c.nulls[i] = true
		}
	}
	return c
}
func (c *FloatColumn) Name() string              { return c.name }
func (c *FloatColumn) Kind() Kind                { return KindFloat }
func (c *FloatColumn) Len() int                  { return len(c.data) }
func (c *FloatColumn) IsNull(i int) bool         { return c.nulls[i] }
func (c *FloatColumn) SetNull(i int)             { c.nulls[i] = true }
func (c *FloatColumn) NullCount() int            { return countNulls(c.nulls) }
func (c *FloatColumn) Get(i int) (float64, bool) { return c.data[i], !c.nulls[i] }
func (c *FloatColumn) Set(i int, v float64)      { c.data[i] = v; c.nulls[i] = math.IsNaN(v) }
func (c *FloatColumn) AppendNull()               { c.data = append(c.data, 0); c.nulls = append(c.nulls, true) }
func (c *FloatColumn) Append(v float64) {
	c.data = append(c.data, v)
	c.nulls = append(c.nulls, math.IsNaN(v))
}
func (c *FloatColumn) Clone() Column {
	return &FloatColumn{name: c.name, data: append([]float64(nil), c.data...), nulls: append([]bool(nil), c.nulls...)}
}

// twoTo63 is the first float64 above the int64 range.
const twoTo63 = 9223372036854775808.0

// ToInt converts a fully present column to an IntColumn, truncating toward
// zero. It reports false, and returns nil, if any cell is null or a value
// (including ±Inf) does not fit in an int64.
func (c *FloatColumn) ToInt() (*IntColumn, bool) {
	if c.NullCount() > 0 {
		return nil, false
	}
	out := NewIntColumn(c.name, c.Len())
	for i, v := range c.data {
		if v >= twoTo63 || v < -twoTo63 {
			return nil, false
		}
		out.data[i] = int64(v)
	}
	return out, true
}

type StringColumn struct {
	name  string
	data  []string
	nulls []bool
}

func NewStringColumn(name string, n int) *StringColumn {
	return &StringColumn{name: name, data: make([]string, n), nulls: make([]bool, n)}
}

// NewStringColumnFrom builds a column from values; valid[i] == false marks
// row i missing.
func NewStringColumnFrom(name string, vals []string, valid []bool) *StringColumn {
	return &StringColumn{name: name, data: append([]string(nil), vals...), nulls: nullMask(len(vals), valid)}
}
func (c *StringColumn) Name() string             { return c.name }
func (c *StringColumn) Kind() Kind               { return KindString }
func (c *StringColumn) Len() int                 { return len(c.data) }
func (c *StringColumn) IsNull(i int) bool        { return c.nulls[i] }
func (c *StringColumn) SetNull(i int)            { c.nulls[i] = true }
func (c *StringColumn) NullCount() int           { return countNulls(c.nulls) }
func (c *StringColumn) Get(i int) (string, bool) { return c.data[i], !c.nulls[i] }
func (c *StringColumn) Set(i int, v string)      { c.data[i] = v; c.nulls[i] = false }
func (c *StringColumn) AppendNull()              { c.data = append(c.data, ""); c.nulls = append(c.nulls, true) }
func (c *StringColumn) Append(v string)          { c.data = append(c.data, v); c.nulls = append(c.nulls, false) }
func (c *StringColumn) Clone() Column {
	return &StringColumn{name: c.name, data: append([]string(nil), c.data...), nulls: append([]bool(nil), c.nulls...)}
}

type TimeColumn struct {
	name  string
	data  []time.Time
	nulls []bool
}

func NewTimeColumn(name string, n int) *TimeColumn {
	return &TimeColumn{name: name, data: make([]time.Time, n), nulls: make([]bool, n)}
}
func (c *TimeColumn) Name() string                { return c.name }
func (c *TimeColumn) Kind() Kind                  { return KindTime }
func (c *TimeColumn) Len() int                    { return len(c.data) }
func (c *TimeColumn) IsNull(i int) bool           { return c.nulls[i] }
func (c *TimeColumn) SetNull(i int)               { c.nulls[i] = true }
func (c *TimeColumn) NullCount() int              { return countNulls(c.nulls) }
func (c *TimeColumn) Get(i int) (time.Time, bool) { return c.data[i], !c.nulls[i] }
func (c *TimeColumn) Set(i int, v time.Time)      { c.data[i] = v; c.nulls[i] = false }
func (c *TimeColumn) AppendNull() {
	c.data = append(c.data, time.Time{})
	c.nulls = append(c.nulls, true)
}
func (c *TimeColumn) Append(v time.Time) {
	c.data = append(c.data, v)
	c.nulls = append(c.nulls, false)
}
func (c *TimeColumn) Clone() Column {
	return &TimeColumn{name: c.name, data: append([]time.Time(nil), c.data...), nulls: append([]bool(nil), c.nulls...)}
}
