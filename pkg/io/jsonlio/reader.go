package jsonlio

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	j "github.com/wdm0006/imputer/pkg/frame"
	iox "github.com/wdm0006/imputer/pkg/io/ioutils"
)

type ReaderOptions struct {
	SampleRows int  // for inference; default 100
	Strict     bool // if true, error on values that do not fit the inferred kind
}

// Reader decodes one JSON object per line. Keys become columns; JSON null
// and absent keys are missing cells.
type Reader struct {
	dec *json.Decoder
	opt ReaderOptions
	buf []map[string]any
	// values left missing because they did not fit the column kind
	badCells int
}

// Open opens a (possibly gzipped) JSONL file, or stdin for "-".
func Open(path string, opt ReaderOptions) (*Reader, io.Closer, error) {
	rc, err := iox.OpenMaybeCompressed(path)
	if err != nil {
		return nil, nil, err
	}
	return NewReaderFrom(rc, opt), rc, nil
}

func NewReaderFrom(r io.Reader, opt ReaderOptions) *Reader {
	return &Reader{dec: json.NewDecoder(bufio.NewReader(r)), opt: opt}
}

// InferSchema samples records to determine columns (sorted by key) and kinds.
func (r *Reader) InferSchema() (j.Schema, error) {
	max := r.opt.SampleRows
	if max <= 0 {
		max = 100
	}
	for len(r.buf) < max {
		m, err := r.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return j.Schema{}, err
		}
		r.buf = append(r.buf, m)
	}
	return j.SchemaFromRecords(r.buf), nil
}

// ReadAll loads the sampled records and the rest of the input into a Frame.
// Keys not present in schema are ignored.
func (r *Reader) ReadAll(schema j.Schema) (*j.Frame, error) {
	f := j.NewFrame(schema)
	for _, m := range r.buf {
		if err := r.appendRecord(f, m); err != nil {
			return nil, err
		}
	}
	r.buf = nil
	for {
		m, err := r.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := r.appendRecord(f, m); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func (r *Reader) next() (map[string]any, error) {
	var m map[string]any
	if err := r.dec.Decode(&m); err != nil {
		if err == io.EOF {
			return nil, err
		}
		return nil, fmt.Errorf("jsonl decode: %w", err)
	}
	return m, nil
}

func (r *Reader) appendRecord(f *j.Frame, m map[string]any) error {
	f.AppendNullRow()
	row := f.Rows() - 1
	for _, cs := range f.Schema().Columns {
		v, ok := m[cs.Name]
		if !ok {
			continue
		}
		if err := f.SetCellValue(row, cs.Name, v); err != nil {
			if !errors.Is(err, j.ErrUnparseable) || r.opt.Strict {
				return fmt.Errorf("jsonl: %w", err)
			}
			r.badCells++
		}
	}
	return nil
}

// Warnings summarises values that were read as missing because they did not
// fit the inferred column kind.
func (r *Reader) Warnings() string {
	if r.badCells == 0 {
		return ""
	}
	return fmt.Sprintf("unparsed_cells=%d", r.badCells)
}
