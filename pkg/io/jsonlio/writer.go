package jsonlio

import (
	"encoding/json"
	"io"

	j "github.com/wdm0006/imputer/pkg/frame"
	iox "github.com/wdm0006/imputer/pkg/io/ioutils"
)

// WriteAll writes one JSON object per row to path ("-" for stdout, .gz to compress).
func WriteAll(path string, f *j.Frame) error {
	out, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return err
	}
	if err := Write(out, f); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// Write encodes f as JSON lines. Missing cells are written as null.
func Write(dst io.Writer, f *j.Frame) error {
	enc := json.NewEncoder(dst)
	cols := make([]j.Column, f.Cols())
	for i, cs := range f.Schema().Columns {
		cols[i], _ = f.ColumnByName(cs.Name)
	}
	for r := 0; r < f.Rows(); r++ {
		m := make(map[string]any, len(cols))
		for _, col := range cols {
			if v, ok := j.Value(col, r); ok {
				m[col.Name()] = v
			} else {
				m[col.Name()] = nil
			}
		}
		if err := enc.Encode(m); err != nil {
			return err
		}
	}
	return nil
}
