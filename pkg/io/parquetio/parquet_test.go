package parquetio

import (
	"path/filepath"
	"strings"
	"testing"

	j "github.com/wdm0006/imputer/pkg/frame"
)

func TestParquetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "passengers.parquet")
	emb := j.NewStringColumnFrom("Embarked", []string{"S", "", "Q"}, []bool{true, false, true})
	age := j.NewIntColumnFrom("Age", []int64{22, 0, 35}, []bool{true, false, true})
	fare := j.NewFloatColumnFrom("Fare", []float64{7.25, 71.2833, 8.05}, nil)
	in, err := j.FromColumns(age, emb, fare)
	if err != nil {
		t.Fatal(err)
	}
	if err := WriteAll(path, in); err != nil {
		t.Fatal(err)
	}

	out, err := ReadAll(path)
	if err != nil {
		t.Fatal(err)
	}
	if out.Rows() != 3 || out.Cols() != 3 {
		t.Fatalf("got %dx%d", out.Rows(), out.Cols())
	}
	if out.Schema().Columns[0].Name != "Age" {
		t.Fatalf("column order not kept: %+v", out.Schema())
	}
	for _, name := range []string{"Age", "Embarked"} {
		col, _ := out.ColumnByName(name)
		if col.NullCount() != 1 || !col.IsNull(1) {
			t.Fatalf("%s: expected row 1 missing", name)
		}
	}
	col, _ := out.ColumnByName("Fare")
	if j.FormatValue(col, 1) != "71.2833" {
		t.Fatalf("got %s", j.FormatValue(col, 1))
	}
}

func TestSchemaJSONStringColumns(t *testing.T) {
	s := j.Schema{Columns: []j.ColumnSchema{
		{Name: "Embarked", Type: j.KindString, Nullable: true},
		{Name: "Boarded", Type: j.KindTime, Nullable: true},
	}}
	got, err := schemaJSON(s)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"name=Embarked, repetitiontype=OPTIONAL, type=UTF8, encoding=PLAIN_DICTIONARY",
		"name=Boarded, repetitiontype=OPTIONAL, type=UTF8, encoding=PLAIN_DICTIONARY",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("schema %s missing tag %q", got, want)
		}
	}
	if strings.Contains(got, "convertedtype") {
		t.Fatalf("schema uses a tag the writer does not understand: %s", got)
	}
}
