package impute

import (
	"context"
	"testing"

	j "github.com/wdm0006/imputer/pkg/frame"
)

func makeLargeFloatFrame(n int) *j.Frame {
	s := j.Schema{Columns: []j.ColumnSchema{{Name: "x", Type: j.KindFloat, Nullable: true}}}
	f := j.NewFrame(s)
	for i := 0; i < n; i++ {
		f.AppendNullRow()
	}
	col, _ := f.ColumnByName("x")
	c := col.(*j.FloatColumn)
	for i := 0; i < n; i += 2 {
		c.Set(i, float64(i%10))
	}
	return f
}

func BenchmarkImputeMean(b *testing.B) {
	f := makeLargeFloatFrame(10000)
	tform := &Mean{Column: "x"}
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		if _, err := tform.Apply(context.Background(), f); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkImputeRandomRange(b *testing.B) {
	f := makeLargeFloatFrame(10000)
	r, err := NewRandomRange(WithSeed(42))
	if err != nil {
		b.Fatal(err)
	}
	step := r.Step("x")
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		if _, err := step.Apply(context.Background(), f); err != nil {
			b.Fatal(err)
		}
	}
}
