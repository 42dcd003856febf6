// Package tableio reads and writes frames in any of the supported file
// formats, choosing the codec from an explicit format name or the path
// extension.
package tableio

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	j "github.com/wdm0006/imputer/pkg/frame"
	"github.com/wdm0006/imputer/pkg/io/csvio"
	iox "github.com/wdm0006/imputer/pkg/io/ioutils"
	"github.com/wdm0006/imputer/pkg/io/jsonlio"
	"github.com/wdm0006/imputer/pkg/io/parquetio"
)

const (
	FormatCSV     = "csv"
	FormatTSV     = "tsv"
	FormatJSONL   = "jsonl"
	FormatParquet = "parquet"
)

var ErrUnknownFormat = errors.New("unknown table format")

type Options struct {
	Format     string // empty = from extension, csv for stdin
	NoHeader   bool
	Delimiter  rune
	SampleRows int
	Strict     bool
}

// DetectFormat resolves the format for path. A trailing .gz is ignored.
func DetectFormat(path, format string) (string, error) {
	if format != "" {
		switch f := strings.ToLower(format); f {
		case FormatCSV, FormatTSV, FormatJSONL, FormatParquet:
			return f, nil
		case "json", "ndjson":
			return FormatJSONL, nil
		default:
			return "", fmt.Errorf("%w: %s", ErrUnknownFormat, format)
		}
	}
	if path == "" || path == "-" {
		return FormatCSV, nil
	}
	switch ext := strings.ToLower(filepath.Ext(iox.TrimCompression(path))); ext {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".tsv", ".tab":
		return FormatTSV, nil
	case ".jsonl", ".ndjson", ".json":
		return FormatJSONL, nil
	case ".parquet", ".pq":
		return FormatParquet, nil
	default:
		return "", fmt.Errorf("%w: extension %q", ErrUnknownFormat, ext)
	}
}

// Read loads the table at path ("-" for stdin) into a Frame. Reader warnings
// (short or long CSV records, cells that did not fit their column kind) are
// returned alongside.
func Read(path string, opt Options) (*j.Frame, string, error) {
	format, err := DetectFormat(path, opt.Format)
	if err != nil {
		return nil, "", err
	}
	switch format {
	case FormatCSV, FormatTSV:
		delim := opt.Delimiter
		if delim == 0 && format == FormatTSV {
			delim = '\t'
		}
		r, c, err := csvio.Open(path, csvio.ReaderOptions{HasHeader: !opt.NoHeader, Delimiter: delim, SampleRows: opt.SampleRows, Strict: opt.Strict})
		if err != nil {
			return nil, "", err
		}
		defer func() { _ = c.Close() }()
		schema, _, err := r.InferSchema()
		if err != nil {
			return nil, "", fmt.Errorf("csv infer: %w", err)
		}
		f, err := r.ReadAll(schema)
		if err != nil {
			return nil, "", err
		}
		return f, r.Warnings(), nil
	case FormatJSONL:
		r, c, err := jsonlio.Open(path, jsonlio.ReaderOptions{SampleRows: opt.SampleRows, Strict: opt.Strict})
		if err != nil {
			return nil, "", err
		}
		defer func() { _ = c.Close() }()
		schema, err := r.InferSchema()
		if err != nil {
			return nil, "", err
		}
		f, err := r.ReadAll(schema)
		if err != nil {
			return nil, "", err
		}
		return f, r.Warnings(), nil
	default:
		if path == "" || path == "-" {
			return nil, "", fmt.Errorf("parquet cannot be read from stdin")
		}
		f, err := parquetio.ReadAll(path)
		return f, "", err
	}
}

// Write stores f at path ("-" for stdout) in the requested or detected format.
func Write(path string, f *j.Frame, opt Options) error {
	format, err := DetectFormat(path, opt.Format)
	if err != nil {
		return err
	}
	switch format {
	case FormatCSV, FormatTSV:
		delim := opt.Delimiter
		if delim == 0 && format == FormatTSV {
			delim = '\t'
		}
		return csvio.WriteAll(path, f, csvio.WriterOptions{Delimiter: delim})
	case FormatJSONL:
		return jsonlio.WriteAll(path, f)
	default:
		if path == "" || path == "-" {
			return fmt.Errorf("parquet cannot be written to stdout")
		}
		return parquetio.WriteAll(path, f)
	}
}
