package frame

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrColumnNotFound is returned when a named column is absent from a Frame.
	ErrColumnNotFound = errors.New("column not found")
	// ErrLengthMismatch is returned when a replacement column has the wrong row count.
	ErrLengthMismatch = errors.New("column length mismatch")
	// ErrUnparseable is returned when a present value does not fit the column
	// kind. The cell is left null.
	ErrUnparseable = errors.New("value does not fit column kind")
)

// Schema describes the logical shape of a dataset.
type Schema struct {
	Columns []ColumnSchema
}

type ColumnSchema struct {
	Name     string
	Type     Kind
	Nullable bool
}

// Frame is a columnar container for tabular data.
type Frame struct {
	schema Schema
	cols   []Column
	index  map[string]int // name -> col index
	nrows  int
}

func NewFrame(s Schema) *Frame {
	f := &Frame{
		schema: Schema{Columns: append([]ColumnSchema(nil), s.Columns...)},
		cols:   make([]Column, len(s.Columns)),
		index:  make(map[string]int, len(s.Columns)),
	}
	for i, cs := range s.Columns {
		f.cols[i] = newColumn(cs)
		f.index[cs.Name] = i
	}
	return f
}

func newColumn(cs ColumnSchema) Column {
	switch cs.Type {
	case KindBool:
		return NewBoolColumn(cs.Name, 0)
	case KindInt:
		return NewIntColumn(cs.Name, 0)
	case KindFloat:
		return NewFloatColumn(cs.Name, 0)
	case KindString:
		return NewStringColumn(cs.Name, 0)
	case KindTime:
		return NewTimeColumn(cs.Name, 0)
	default:
		panic("invalid column kind")
	}
}

// FromColumns builds a Frame around existing columns, which must share a length.
func FromColumns(cols ...Column) (*Frame, error) {
	f := &Frame{cols: make([]Column, len(cols)), index: make(map[string]int, len(cols))}
	for i, c := range cols {
		if i > 0 && c.Len() != f.nrows {
			return nil, fmt.Errorf("column %s: %w: have %d rows, want %d", c.Name(), ErrLengthMismatch, c.Len(), f.nrows)
		}
		f.nrows = c.Len()
		f.cols[i] = c
		f.index[c.Name()] = i
		f.schema.Columns = append(f.schema.Columns, ColumnSchema{Name: c.Name(), Type: c.Kind(), Nullable: true})
	}
	return f, nil
}

func (f *Frame) Schema() Schema { return f.schema }
func (f *Frame) Rows() int      { return f.nrows }
func (f *Frame) Cols() int      { return len(f.cols) }

func (f *Frame) ColumnByName(name string) (Column, bool) {
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return f.cols[i], true
}

// Column is ColumnByName with an ErrColumnNotFound error for absent names.
func (f *Frame) Column(name string) (Column, error) {
	c, ok := f.ColumnByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, name)
	}
	return c, nil
}

// ReplaceColumn swaps in c for the column of the same name. The schema kind
// follows the new column, so a float column can be replaced by an int one.
func (f *Frame) ReplaceColumn(c Column) error {
	i, ok := f.index[c.Name()]
	if !ok {
		return fmt.Errorf("%w: %s", ErrColumnNotFound, c.Name())
	}
	if c.Len() != f.nrows {
		return fmt.Errorf("column %s: %w: have %d rows, want %d", c.Name(), ErrLengthMismatch, c.Len(), f.nrows)
	}
	f.cols[i] = c
	f.schema.Columns[i].Type = c.Kind()
	return nil
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	out := &Frame{
		schema: Schema{Columns: append([]ColumnSchema(nil), f.schema.Columns...)},
		cols:   make([]Column, len(f.cols)),
		index:  make(map[string]int, len(f.index)),
		nrows:  f.nrows,
	}
	for i, c := range f.cols {
		out.cols[i] = c.Clone()
	}
	for k, v := range f.index {
		out.index[k] = v
	}
	return out
}

// AppendNullRow appends a row with all-null values.
func (f *Frame) AppendNullRow() {
	for _, c := range f.cols {
		switch col := c.(type) {
		case *BoolColumn:
			col.AppendNull()
		case *IntColumn:
			col.AppendNull()
		case *FloatColumn:
			col.AppendNull()
		case *StringColumn:
			col.AppendNull()
		case *TimeColumn:
			col.AppendNull()
		default:
			panic("unknown column type")
		}
	}
	f.nrows++
}

// SetCell sets a single cell value by name (row must exist). A nil value
// marks the cell missing.
func (f *Frame) SetCell(row int, name string, v any) error {
	c, err := f.Column(name)
	if err != nil {
		return err
	}
	if v == nil {
		c.SetNull(row)
		return nil
	}
	switch col := c.(type) {
	case *BoolColumn:
		b, ok := v.(bool)
		if !ok {
			return fmt.Errorf("column %s expects bool", name)
		}
		col.Set(row, b)
	case *IntColumn:
		switch t := v.(type) {
		case int:
			col.Set(row, int64(t))
		case int32:
			col.Set(row, int64(t))
		case int64:
			col.Set(row, t)
		case float64:
			col.Set(row, int64(t))
		default:
			return fmt.Errorf("column %s expects int/int64", name)
		}
	case *FloatColumn:
		switch t := v.(type) {
		case float32:
			col.Set(row, float64(t))
		case float64:
			col.Set(row, t)
		case int:
			col.Set(row, float64(t))
		case int64:
			col.Set(row, float64(t))
		default:
			return fmt.Errorf("column %s expects float64", name)
		}
	case *StringColumn:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("column %s expects string", name)
		}
		col.Set(row, s)
	case *TimeColumn:
		t, ok := v.(time.Time)
		if !ok {
			return fmt.Errorf("column %s expects time.Time", name)
		}
		col.Set(row, t)
	default:
		return fmt.Errorf("unknown column kind")
	}
	return nil
}

// missingTokens are textual spellings of a missing value.
var missingTokens = map[string]struct{}{
	"": {}, "na": {}, "n/a": {}, "nan": {}, "null": {}, "none": {},
}

// IsMissingToken reports whether raw spells a missing value.
func IsMissingToken(raw string) bool {
	_, ok := missingTokens[strings.ToLower(strings.TrimSpace(raw))]
	return ok
}

// SetCellString parses raw according to the column kind. Missing tokens
// leave the cell null. A fractional number in an int column widens the
// column to float. Any other value the kind cannot hold leaves the cell null
// and returns an error wrapping ErrUnparseable.
func (f *Frame) SetCellString(row int, name, raw string) error {
	c, err := f.Column(name)
	if err != nil {
		return err
	}
	val := strings.ToValidUTF8(strings.TrimSpace(raw), "?")
	if c.Kind() != KindString && IsMissingToken(val) {
		c.SetNull(row)
		return nil
	}
	if val == "" {
		c.SetNull(row)
		return nil
	}
	switch col := c.(type) {
	case *FloatColumn:
		if x, err := strconv.ParseFloat(val, 64); err == nil {
			col.Set(row, x)
			return nil
		}
	case *IntColumn:
		if x, err := strconv.ParseInt(val, 10, 64); err == nil {
			col.Set(row, x)
			return nil
		}
		if x, err := strconv.ParseFloat(val, 64); err == nil {
			f.widenToFloat(col).Set(row, x)
			return nil
		}
	case *BoolColumn:
		if x, err := strconv.ParseBool(strings.ToLower(val)); err == nil {
			col.Set(row, x)
			return nil
		}
	case *TimeColumn:
		if x, err := time.Parse(time.RFC3339, val); err == nil {
			col.Set(row, x)
			return nil
		}
	case *StringColumn:
		col.Set(row, val)
		return nil
	}
	c.SetNull(row)
	return fmt.Errorf("column %s row %d: %w: %q is not %s", name, row, ErrUnparseable, val, c.Kind())
}

// widenToFloat replaces an int column of f with a float column holding the
// same values and nulls, and returns the new column.
func (f *Frame) widenToFloat(c *IntColumn) *FloatColumn {
	fc := NewFloatColumn(c.name, c.Len())
	for i, v := range c.data {
		if c.nulls[i] {
			continue
		}
		fc.Set(i, float64(v))
	}
	_ = f.ReplaceColumn(fc)
	return fc
}

// Value returns row i of c as a Go value, or false when the cell is null.
func Value(c Column, i int) (any, bool) {
	switch col := c.(type) {
	case *BoolColumn:
		return col.Get(i)
	case *IntColumn:
		return col.Get(i)
	case *FloatColumn:
		return col.Get(i)
	case *StringColumn:
		return col.Get(i)
	case *TimeColumn:
		return col.Get(i)
	}
	return nil, false
}

// FormatValue renders row i of c as text; null cells render as "".
func FormatValue(c Column, i int) string {
	switch col := c.(type) {
	case *FloatColumn:
		if v, ok := col.Get(i); ok {
			return strconv.FormatFloat(v, 'g', -1, 64)
		}
	case *IntColumn:
		if v, ok := col.Get(i); ok {
			return strconv.FormatInt(v, 10)
		}
	case *BoolColumn:
		if v, ok := col.Get(i); ok {
			return strconv.FormatBool(v)
		}
	case *StringColumn:
		if v, ok := col.Get(i); ok {
			return v
		}
	case *TimeColumn:
		if v, ok := col.Get(i); ok {
			return v.Format(time.RFC3339)
		}
	}
	return ""
}
