package parquetio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	parquet "github.com/segmentio/parquet-go"

	j "github.com/wdm0006/imputer/pkg/frame"
)

// ReadAll loads a flat Parquet file into a Frame. Column kinds are inferred
// from every row, so each value fits its column; nested columns are named by
// their dotted path.
func ReadAll(path string) (*j.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	pf, err := parquet.OpenFile(f, st.Size())
	if err != nil {
		return nil, fmt.Errorf("parquet open %s: %w", path, err)
	}
	r := parquet.NewReader(pf)
	defer func() { _ = r.Close() }()

	paths := r.Schema().Columns()
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = strings.Join(p, ".")
	}

	var recs []map[string]any
	buf := make([]parquet.Row, 256)
	for {
		n, err := r.ReadRows(buf)
		for _, row := range buf[:n] {
			recs = append(recs, toRecord(row, names))
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parquet read %s: %w", path, err)
		}
		if n == 0 {
			break
		}
	}

	schema := j.SchemaFromRecords(recs)
	// keep file column order, not sorted order
	schema = reorder(schema, names)

	fr := j.NewFrame(schema)
	for _, m := range recs {
		fr.AppendNullRow()
		row := fr.Rows() - 1
		for _, cs := range schema.Columns {
			if err := fr.SetCellValue(row, cs.Name, m[cs.Name]); err != nil {
				return nil, fmt.Errorf("parquet read %s: %w", path, err)
			}
		}
	}
	return fr, nil
}

func toRecord(row parquet.Row, names []string) map[string]any {
	m := make(map[string]any, len(names))
	for _, v := range row {
		c := v.Column()
		if c < 0 || c >= len(names) {
			continue
		}
		if v.IsNull() {
			m[names[c]] = nil
			continue
		}
		switch v.Kind() {
		case parquet.Boolean:
			m[names[c]] = v.Boolean()
		case parquet.Int32:
			m[names[c]] = int64(v.Int32())
		case parquet.Int64:
			m[names[c]] = v.Int64()
		case parquet.Float:
			m[names[c]] = float64(v.Float())
		case parquet.Double:
			m[names[c]] = v.Double()
		case parquet.ByteArray, parquet.FixedLenByteArray:
			m[names[c]] = string(v.ByteArray())
		default:
			m[names[c]] = v.String()
		}
	}
	return m
}

func reorder(s j.Schema, names []string) j.Schema {
	byName := make(map[string]j.ColumnSchema, len(s.Columns))
	for _, cs := range s.Columns {
		byName[cs.Name] = cs
	}
	out := j.Schema{Columns: make([]j.ColumnSchema, 0, len(names))}
	for _, n := range names {
		cs, ok := byName[n]
		if !ok {
			// column null in every row
			cs = j.ColumnSchema{Name: n, Type: j.KindFloat, Nullable: true}
		}
		out.Columns = append(out.Columns, cs)
	}
	return out
}
