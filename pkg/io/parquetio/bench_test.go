package parquetio

import (
	"path/filepath"
	"testing"

	j "github.com/wdm0006/imputer/pkg/frame"
)

func makeFrame(rows int) *j.Frame {
	s := j.Schema{Columns: []j.ColumnSchema{{Name: "Fare", Type: j.KindFloat, Nullable: true}, {Name: "Age", Type: j.KindInt, Nullable: true}}}
	f := j.NewFrame(s)
	for i := 0; i < rows; i++ {
		f.AppendNullRow()
		_ = f.SetCell(i, "Fare", float64(i%100))
		if i%5 != 0 {
			_ = f.SetCell(i, "Age", int64(i%80))
		}
	}
	return f
}

func BenchmarkParquetWrite(b *testing.B) {
	f := makeFrame(50000)
	path := filepath.Join(b.TempDir(), "bench.parquet")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := WriteAll(path, f); err != nil {
			b.Fatal(err)
		}
	}
}
