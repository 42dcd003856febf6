package tableio

import (
	"errors"
	"path/filepath"
	"testing"

	j "github.com/wdm0006/imputer/pkg/frame"
)

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		path, format, want string
	}{
		{"train.csv", "", FormatCSV},
		{"train.csv.gz", "", FormatCSV},
		{"train.tsv", "", FormatTSV},
		{"rows.ndjson", "", FormatJSONL},
		{"rows.parquet", "", FormatParquet},
		{"-", "", FormatCSV},
		{"-", "json", FormatJSONL},
		{"anything.dat", "TSV", FormatTSV},
	}
	for _, c := range cases {
		got, err := DetectFormat(c.path, c.format)
		if err != nil || got != c.want {
			t.Fatalf("DetectFormat(%q, %q) = %q, %v; want %q", c.path, c.format, got, err, c.want)
		}
	}
	if _, err := DetectFormat("a.xlsx", ""); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestRoundTripFormats(t *testing.T) {
	age := j.NewIntColumnFrom("Age", []int64{22, 0, 35}, []bool{true, false, true})
	emb := j.NewStringColumnFrom("Embarked", []string{"S", "", "Q"}, []bool{true, false, true})
	in, err := j.FromColumns(age, emb)
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	for _, name := range []string{"out.csv", "out.tsv.gz", "out.jsonl", "out.parquet"} {
		p := filepath.Join(dir, name)
		if err := Write(p, in, Options{}); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		out, warn, err := Read(p, Options{})
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if warn != "" {
			t.Fatalf("%s: unexpected warnings %q", name, warn)
		}
		if out.Rows() != 3 {
			t.Fatalf("%s: got %d rows", name, out.Rows())
		}
		col, err := out.Column("Age")
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if col.Kind() != j.KindInt || !col.IsNull(1) {
			t.Fatalf("%s: Age kind=%s null(1)=%v", name, col.Kind(), col.IsNull(1))
		}
	}
}
