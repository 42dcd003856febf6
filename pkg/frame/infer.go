package frame

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"
)

var numericText = regexp.MustCompile(`^[-+]?[0-9]*\.?[0-9]+([eE][-+]?[0-9]+)?$`)

// SchemaFromRecords infers a schema from decoded records (JSON lines,
// Parquet rows). Columns come out in sorted key order. A key that is null or
// absent in every record is numeric.
func SchemaFromRecords(rows []map[string]any) Schema {
	keySet := map[string]struct{}{}
	for _, m := range rows {
		for k := range m {
			keySet[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(keySet))
	for k := range keySet {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := Schema{Columns: make([]ColumnSchema, len(keys))}
	for i, k := range keys {
		s.Columns[i] = ColumnSchema{Name: k, Type: inferKind(rows, k), Nullable: true}
	}
	return s
}

func inferKind(rows []map[string]any, key string) Kind {
	nNum, nInt, nBool, nStr, nTime := 0, 0, 0, 0, 0
	for _, m := range rows {
		v, ok := m[key]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case float64:
			nNum++
			if float64(int64(t)) == t {
				nInt++
			}
		case float32:
			nNum++
		case int, int32, int64:
			nNum++
			nInt++
		case bool:
			nBool++
		case time.Time:
			nTime++
		case string:
			s := strings.TrimSpace(t)
			if IsMissingToken(s) {
				continue
			}
			if numericText.MatchString(s) {
				nNum++
				if !strings.ContainsAny(s, ".eE") {
					nInt++
				}
			} else {
				nStr++
			}
		default:
			nStr++
		}
	}
	switch {
	case nStr > 0:
		return KindString
	case nTime > 0 && nNum == 0 && nBool == 0:
		return KindTime
	case nBool > 0 && nNum == 0:
		return KindBool
	case nBool > 0 || nTime > 0:
		return KindString
	case nNum > 0 && nInt == nNum:
		return KindInt
	default:
		return KindFloat
	}
}

// SetCellValue stores a decoded value into a cell, coercing numbers and
// strings to the column kind like SetCellString does. A fractional number
// widens an int column to float; values that do not fit leave the cell null
// and return an error wrapping ErrUnparseable.
func (f *Frame) SetCellValue(row int, name string, v any) error {
	c, err := f.Column(name)
	if err != nil {
		return err
	}
	if v == nil {
		c.SetNull(row)
		return nil
	}
	if s, ok := v.(string); ok {
		return f.SetCellString(row, name, s)
	}
	switch col := c.(type) {
	case *FloatColumn:
		if x, ok := toFloat(v); ok {
			col.Set(row, x)
			return nil
		}
	case *IntColumn:
		if n, ok := v.(int64); ok {
			col.Set(row, n)
			return nil
		}
		if x, ok := toFloat(v); ok {
			if x == math.Trunc(x) && x >= -twoTo63 && x < twoTo63 {
				col.Set(row, int64(x))
			} else {
				f.widenToFloat(col).Set(row, x)
			}
			return nil
		}
	case *BoolColumn:
		if b, ok := v.(bool); ok {
			col.Set(row, b)
			return nil
		}
	case *TimeColumn:
		if t, ok := v.(time.Time); ok {
			col.Set(row, t)
			return nil
		}
	case *StringColumn:
		col.Set(row, fmt.Sprint(v))
		return nil
	}
	c.SetNull(row)
	return fmt.Errorf("column %s row %d: %w: %T is not %s", name, row, ErrUnparseable, v, c.Kind())
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	}
	return 0, false
}
