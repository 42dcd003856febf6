package impute

import (
	"context"
	"errors"
	"testing"

	j "github.com/wdm0006/imputer/pkg/frame"
)

func makeFloatFrame() *j.Frame {
	s := j.Schema{Columns: []j.ColumnSchema{{Name: "x", Type: j.KindFloat, Nullable: true}}}
	f := j.NewFrame(s)
	for i := 0; i < 5; i++ {
		f.AppendNullRow()
	}
	col, _ := f.ColumnByName("x")
	c := col.(*j.FloatColumn)
	c.Set(0, 1.0)
	c.Set(2, 3.0)
	// rows 1,3,4 remain null
	return f
}

func floatAt(t *testing.T, f *j.Frame, name string, row int) float64 {
	t.Helper()
	col, _ := f.ColumnByName(name)
	v, ok := col.(*j.FloatColumn).Get(row)
	if !ok {
		t.Fatalf("%s row %d is null", name, row)
	}
	return v
}

func TestConstant(t *testing.T) {
	f := makeFloatFrame()
	out, err := (&Constant{Column: "x", Value: 2.5}).Apply(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}
	for _, i := range []int{1, 3, 4} {
		if v := floatAt(t, out, "x", i); v != 2.5 {
			t.Fatalf("row %d: got %v, want 2.5", i, v)
		}
	}
	if floatAt(t, out, "x", 2) != 3 {
		t.Fatal("constant imputer changed a present value")
	}
}

func TestConstantWrongType(t *testing.T) {
	_, err := (&Constant{Column: "x", Value: "zero"}).Apply(context.Background(), makeFloatFrame())
	if !errors.Is(err, ErrUnsupportedKind) {
		t.Fatalf("expected ErrUnsupportedKind, got %v", err)
	}
}

func TestMean(t *testing.T) {
	out, err := (&Mean{Column: "x"}).Apply(context.Background(), makeFloatFrame())
	if err != nil {
		t.Fatal(err)
	}
	for _, i := range []int{1, 3, 4} {
		if v := floatAt(t, out, "x", i); v != 2 {
			t.Fatalf("row %d: got %v, want 2", i, v)
		}
	}
}

func TestMeanIntRounds(t *testing.T) {
	c := j.NewIntColumnFrom("n", []int64{1, 2, 0}, []bool{true, true, false})
	out, err := j.FitTransform(context.Background(), &Mean{}, c)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := out.(*j.IntColumn).Get(2); v != 2 {
		t.Fatalf("expected 1.5 to round to 2, got %d", v)
	}
}

func TestMedian(t *testing.T) {
	f := makeFloatFrame()
	col, _ := f.ColumnByName("x")
	col.(*j.FloatColumn).Set(4, 10)
	out, err := (&Median{Column: "x"}).Apply(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}
	if v := floatAt(t, out, "x", 1); v != 3 {
		t.Fatalf("got %v, want 3", v)
	}
}

func TestFitOnAllMissingLeavesColumn(t *testing.T) {
	c := j.NewFloatColumnFrom("x", []float64{0, 0}, []bool{false, false})
	for _, tr := range []j.ColumnTransformer{&Mean{}, &Median{}, &MostFrequent{}} {
		out, err := j.FitTransform(context.Background(), tr, c)
		if err != nil {
			t.Fatal(err)
		}
		if out.NullCount() != 2 {
			t.Fatalf("%T filled an all-missing column", tr)
		}
	}
}

func TestMostFrequent(t *testing.T) {
	c := j.NewStringColumnFrom("Embarked", []string{"S", "C", "", "S", "Q", ""}, []bool{true, true, false, true, true, false})
	mf := &MostFrequent{}
	fitted, err := mf.Fit(context.Background(), c)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := mf.Value(); ok {
		t.Fatal("Fit should not mutate the receiver")
	}
	if v, ok := fitted.(*MostFrequent).Value(); !ok || v != "S" {
		t.Fatalf("expected mode S, got %v", v)
	}
	out, err := fitted.Transform(context.Background(), c)
	if err != nil {
		t.Fatal(err)
	}
	sc := out.(*j.StringColumn)
	for i, want := range []string{"S", "C", "S", "S", "Q", "S"} {
		if v, ok := sc.Get(i); !ok || v != want {
			t.Fatalf("row %d: got %q, want %q", i, v, want)
		}
	}
	if c.NullCount() != 2 {
		t.Fatal("Transform mutated its input")
	}
}

func TestMostFrequentTies(t *testing.T) {
	c := j.NewStringColumnFrom("Embarked", []string{"Q", "C", "Q", "C", ""}, []bool{true, true, true, true, false})
	out, err := j.FitTransform(context.Background(), &MostFrequent{}, c)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := out.(*j.StringColumn).Get(4); v != "C" {
		t.Fatalf("tie should resolve to the smallest value, got %q", v)
	}

	ic := j.NewIntColumnFrom("Pclass", []int64{3, 1, 3, 1, 0}, []bool{true, true, true, true, false})
	out, err = j.FitTransform(context.Background(), &MostFrequent{}, ic)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := out.(*j.IntColumn).Get(4); v != 1 {
		t.Fatalf("tie should resolve to the smallest value, got %d", v)
	}
}

func TestMostFrequentUnfitted(t *testing.T) {
	c := j.NewStringColumnFrom("Embarked", []string{""}, []bool{false})
	out, err := (&MostFrequent{}).Transform(context.Background(), c)
	if err != nil {
		t.Fatal(err)
	}
	if !out.IsNull(0) {
		t.Fatal("unfitted imputer should leave nulls alone")
	}
}

func TestMostFrequentMissingColumnSkipped(t *testing.T) {
	f := makeFloatFrame()
	out, err := (&MostFrequent{Column: "nope"}).Apply(context.Background(), f)
	if err != nil || out != f {
		t.Fatalf("expected frame returned unchanged, got err=%v", err)
	}
}
