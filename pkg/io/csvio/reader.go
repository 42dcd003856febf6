package csvio

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	j "github.com/wdm0006/imputer/pkg/frame"
	iox "github.com/wdm0006/imputer/pkg/io/ioutils"
)

type ReaderOptions struct {
	HasHeader  bool
	Delimiter  rune // 0 = sniff, default ','
	SampleRows int  // for inference; default 100
	Strict     bool // if true, error on short/long records and unparseable cells
}

type Reader struct {
	r   *csv.Reader
	opt ReaderOptions
	buf [][]string
	// repair/warning counters
	shortRecords int
	longRecords  int
	badCells     int
}

// Open opens a (possibly gzipped) CSV file, or stdin for "-". The returned
// Closer releases the underlying file.
func Open(path string, opt ReaderOptions) (*Reader, io.Closer, error) {
	rc, err := iox.OpenMaybeCompressed(path)
	if err != nil {
		return nil, nil, err
	}
	return NewReaderFrom(rc, opt), rc, nil
}

// NewReaderFrom constructs a Reader from an arbitrary io.Reader (stdin, pipe).
func NewReaderFrom(r io.Reader, opt ReaderOptions) *Reader {
	br := bufio.NewReader(r)
	delim, lazy := opt.Delimiter, false
	if delim == 0 {
		sample, _ := br.Peek(4096)
		delim, lazy = sniff(sample)
	}
	rr := csv.NewReader(br)
	rr.Comma = delim
	rr.LazyQuotes = lazy
	rr.ReuseRecord = false
	if !opt.Strict {
		rr.FieldsPerRecord = -1
	}
	return &Reader{r: rr, opt: opt}
}

// InferSchema reads header (if present) and samples rows to determine column kinds.
func (r *Reader) InferSchema() (j.Schema, []string, error) {
	rec, err := r.r.Read()
	if err != nil {
		return j.Schema{}, nil, err
	}
	var names []string
	if r.opt.HasHeader {
		names = make([]string, len(rec))
		for i := range rec {
			names[i] = strings.TrimSpace(strings.ToValidUTF8(rec[i], "?"))
		}
		// strip BOM on first header cell if present
		if len(names) > 0 {
			names[0] = strings.TrimPrefix(names[0], "\ufeff")
		}
	} else {
		names = make([]string, len(rec))
		for i := range names {
			names[i] = "col_" + strconv.Itoa(i)
		}
		r.buf = append(r.buf, rec)
	}

	max := r.opt.SampleRows
	if max <= 0 {
		max = 100
	}
	for len(r.buf) < max {
		rec, err := r.r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return j.Schema{}, nil, err
		}
		r.buf = append(r.buf, rec)
	}

	kinds := inferKinds(r.buf, len(names))
	schema := j.Schema{Columns: make([]j.ColumnSchema, len(names))}
	for i := range names {
		schema.Columns[i] = j.ColumnSchema{Name: names[i], Type: kinds[i], Nullable: true}
	}
	return schema, names, nil
}

// ReadAll loads the sampled rows and the rest of the input into a Frame.
func (r *Reader) ReadAll(schema j.Schema) (*j.Frame, error) {
	f := j.NewFrame(schema)
	for _, rec := range r.buf {
		if err := r.appendRecord(f, schema, rec); err != nil {
			return nil, err
		}
	}
	r.buf = nil
	for {
		rec, err := r.r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := r.appendRecord(f, schema, rec); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func (r *Reader) appendRecord(f *j.Frame, schema j.Schema, rec []string) error {
	if len(rec) > len(schema.Columns) {
		r.longRecords++
		if r.opt.Strict {
			return fmt.Errorf("csv long record at row %d: need %d fields, got %d", f.Rows(), len(schema.Columns), len(rec))
		}
	}
	if len(rec) < len(schema.Columns) {
		r.shortRecords++
		if r.opt.Strict {
			return fmt.Errorf("csv short record at row %d: need %d fields, got %d", f.Rows(), len(schema.Columns), len(rec))
		}
	}
	f.AppendNullRow()
	row := f.Rows() - 1
	for i, cs := range schema.Columns {
		if i >= len(rec) {
			break
		}
		if err := f.SetCellString(row, cs.Name, rec[i]); err != nil {
			if !errors.Is(err, j.ErrUnparseable) || r.opt.Strict {
				return fmt.Errorf("csv: %w", err)
			}
			r.badCells++
		}
	}
	return nil
}

var numre = regexp.MustCompile(`^[-+]?[0-9]*\.?[0-9]+([eE][-+]?[0-9]+)?$`)

func inferKinds(rows [][]string, ncol int) []j.Kind {
	kinds := make([]j.Kind, ncol)
	for c := 0; c < ncol; c++ {
		num, integer, boolean, str := 0, 0, 0, 0
		for _, row := range rows {
			if c >= len(row) {
				continue
			}
			v := strings.TrimSpace(row[c])
			if j.IsMissingToken(v) {
				continue
			}
			switch lv := strings.ToLower(v); {
			case numre.MatchString(v):
				num++
				if !strings.ContainsAny(v, ".eE") {
					integer++
				}
			case lv == "true" || lv == "false":
				boolean++
			default:
				str++
			}
		}
		switch {
		case num == 0 && boolean == 0 && str == 0:
			// all missing: treat as numeric
			kinds[c] = j.KindFloat
		case str > 0:
			kinds[c] = j.KindString
		case boolean > 0 && num == 0:
			kinds[c] = j.KindBool
		case boolean > 0:
			kinds[c] = j.KindString
		case integer == num:
			kinds[c] = j.KindInt
		default:
			kinds[c] = j.KindFloat
		}
	}
	return kinds
}

// sniff picks the most common candidate delimiter in sample and enables
// lazy quotes when quotes are present.
func sniff(sample []byte) (rune, bool) {
	if len(sample) == 0 {
		return ',', false
	}
	if i := bytes.IndexByte(sample, '\n'); i > 0 {
		sample = sample[:i]
	}
	best, bestCount := byte(','), 0
	for _, c := range []byte{',', '\t', ';', '|'} {
		if n := bytes.Count(sample, []byte{c}); n > bestCount {
			best, bestCount = c, n
		}
	}
	return rune(best), bytes.IndexByte(sample, '"') >= 0
}

// Warnings returns a summary string of any repairs/mismatches encountered.
func (r *Reader) Warnings() string {
	var parts []string
	if r.shortRecords > 0 {
		parts = append(parts, fmt.Sprintf("short_records=%d", r.shortRecords))
	}
	if r.longRecords > 0 {
		parts = append(parts, fmt.Sprintf("long_records=%d", r.longRecords))
	}
	if r.badCells > 0 {
		parts = append(parts, fmt.Sprintf("unparsed_cells=%d", r.badCells))
	}
	return strings.Join(parts, ", ")
}
