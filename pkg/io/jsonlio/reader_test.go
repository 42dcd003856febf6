package jsonlio

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	j "github.com/wdm0006/imputer/pkg/frame"
)

func TestJSONLInferAndRead(t *testing.T) {
	p := filepath.FromSlash("testdata/passengers.jsonl")
	r, f, err := Open(p, ReaderOptions{SampleRows: 10})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()
	schema, err := r.InferSchema()
	if err != nil {
		t.Fatal(err)
	}
	names := make([]string, len(schema.Columns))
	for i, cs := range schema.Columns {
		names[i] = cs.Name
	}
	if strings.Join(names, ",") != "Age,Embarked,Fare,Name,PassengerId" {
		t.Fatalf("unexpected columns %v", names)
	}
	fr, err := r.ReadAll(schema)
	if err != nil {
		t.Fatal(err)
	}
	if fr.Rows() != 5 {
		t.Fatalf("expected 5 rows, got %d", fr.Rows())
	}
	age, _ := fr.ColumnByName("Age")
	if age.Kind() != j.KindInt || age.NullCount() != 2 {
		t.Fatalf("Age: kind=%s nulls=%d", age.Kind(), age.NullCount())
	}
	emb, _ := fr.ColumnByName("Embarked")
	if emb.NullCount() != 1 {
		t.Fatalf("expected 1 missing port, got %d", emb.NullCount())
	}
}

func TestJSONLRoundTripNulls(t *testing.T) {
	age := j.NewIntColumnFrom("Age", []int64{22, 0}, []bool{true, false})
	fr, err := j.FromColumns(age)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Write(&buf, fr); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "{\"Age\":22}\n{\"Age\":null}\n" {
		t.Fatalf("got %q", buf.String())
	}

	r := NewReaderFrom(&buf, ReaderOptions{})
	schema, err := r.InferSchema()
	if err != nil {
		t.Fatal(err)
	}
	back, err := r.ReadAll(schema)
	if err != nil {
		t.Fatal(err)
	}
	col, _ := back.ColumnByName("Age")
	if back.Rows() != 2 || !col.IsNull(1) {
		t.Fatal("null did not survive the round trip")
	}
}

func TestJSONLBadInput(t *testing.T) {
	r := NewReaderFrom(strings.NewReader("{\"a\": 1}\n{oops\n"), ReaderOptions{})
	if _, err := r.InferSchema(); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestJSONLLateValues(t *testing.T) {
	in := "{\"Age\": 30}\n{\"Age\": 28.5}\n{\"Age\": \"unknown\"}\n{\"Age\": null}\n"
	r := NewReaderFrom(strings.NewReader(in), ReaderOptions{SampleRows: 1})
	schema, err := r.InferSchema()
	if err != nil {
		t.Fatal(err)
	}
	fr, err := r.ReadAll(schema)
	if err != nil {
		t.Fatal(err)
	}
	col, err := fr.Column("Age")
	if err != nil {
		t.Fatal(err)
	}
	age, ok := col.(*j.FloatColumn)
	if !ok {
		t.Fatalf("expected widened float column, got %s", col.Kind())
	}
	if v, _ := age.Get(1); v != 28.5 {
		t.Fatalf("row 1: got %g", v)
	}
	if age.NullCount() != 2 || r.Warnings() != "unparsed_cells=1" {
		t.Fatalf("nulls=%d warnings=%q", age.NullCount(), r.Warnings())
	}

	r = NewReaderFrom(strings.NewReader(in), ReaderOptions{SampleRows: 1, Strict: true})
	schema, _ = r.InferSchema()
	if _, err := r.ReadAll(schema); !errors.Is(err, j.ErrUnparseable) {
		t.Fatalf("expected ErrUnparseable in strict mode, got %v", err)
	}
}
