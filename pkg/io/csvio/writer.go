package csvio

import (
	"encoding/csv"
	"io"

	j "github.com/wdm0006/imputer/pkg/frame"
	iox "github.com/wdm0006/imputer/pkg/io/ioutils"
)

type WriterOptions struct {
	Delimiter rune // default ','
}

// WriteAll writes a Frame with a header row to path ("-" for stdout, .gz to compress).
func WriteAll(path string, f *j.Frame, opt WriterOptions) error {
	out, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return err
	}
	if err := Write(out, f, opt); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// Write encodes a Frame as CSV with a header row. Missing cells are empty.
func Write(dst io.Writer, f *j.Frame, opt WriterOptions) error {
	w := csv.NewWriter(dst)
	if opt.Delimiter != 0 {
		w.Comma = opt.Delimiter
	}

	cols := make([]j.Column, f.Cols())
	hdr := make([]string, f.Cols())
	for i, cs := range f.Schema().Columns {
		hdr[i] = cs.Name
		cols[i], _ = f.ColumnByName(cs.Name)
	}
	if err := w.Write(hdr); err != nil {
		return err
	}
	row := make([]string, len(cols))
	for r := 0; r < f.Rows(); r++ {
		for c, col := range cols {
			row[c] = j.FormatValue(col, r)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
