package csvio

import (
	"bytes"
	"math"
	"testing"

	j "github.com/wdm0006/imputer/pkg/frame"
)

func TestWrite(t *testing.T) {
	f, err := j.FromColumns(
		j.NewIntColumnFrom("Age", []int64{22, 0}, []bool{true, false}),
		j.NewFloatColumnFrom("Fare", []float64{7.25, math.NaN()}, nil),
		j.NewStringColumnFrom("Embarked", []string{"S", "C"}, nil),
	)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Write(&buf, f, WriterOptions{}); err != nil {
		t.Fatal(err)
	}
	want := "Age,Fare,Embarked\n22,7.25,S\n,,C\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}
