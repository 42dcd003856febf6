// Package profile summarises the missing values and value distribution of
// each column in a Frame, so callers can decide which columns need filling.
package profile

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"gonum.org/v1/gonum/stat"

	j "github.com/wdm0006/imputer/pkg/frame"
)

type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

type NumStats struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
}

type ColumnProfile struct {
	Name         string       `json:"name"`
	Kind         string       `json:"kind"`
	Count        int          `json:"count"`
	Missing      int          `json:"missing"`
	MissingRatio float64      `json:"missing_ratio"`
	Num          *NumStats    `json:"num,omitempty"`
	Top          []ValueCount `json:"top,omitempty"`
}

type Report struct {
	Rows    int             `json:"rows"`
	Columns []ColumnProfile `json:"columns"`
}

// Missing returns the names of columns with at least one missing cell.
func (r Report) Missing() []string {
	var out []string
	for _, c := range r.Columns {
		if c.Missing > 0 {
			out = append(out, c.Name)
		}
	}
	return out
}

// Profile scans every column of f. topK bounds the most frequent values
// listed for string, bool and time columns; zero disables them.
func Profile(f *j.Frame, topK int) Report {
	rep := Report{Rows: f.Rows(), Columns: make([]ColumnProfile, 0, f.Cols())}
	for _, cs := range f.Schema().Columns {
		col, _ := f.ColumnByName(cs.Name)
		cp := ColumnProfile{Name: cs.Name, Kind: cs.Type.String(), Missing: col.NullCount()}
		cp.Count = col.Len() - cp.Missing
		if col.Len() > 0 {
			cp.MissingRatio = float64(cp.Missing) / float64(col.Len())
		}
		switch c := col.(type) {
		case *j.FloatColumn:
			cp.Num = numStats(c.Len(), c.Get)
		case *j.IntColumn:
			cp.Num = numStats(c.Len(), func(i int) (float64, bool) {
				v, ok := c.Get(i)
				return float64(v), ok
			})
		default:
			cp.Top = topValues(col, topK)
		}
		rep.Columns = append(rep.Columns, cp)
	}
	return rep
}

func numStats(n int, get func(int) (float64, bool)) *NumStats {
	xs := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if v, ok := get(i); ok {
			xs = append(xs, v)
		}
	}
	if len(xs) == 0 {
		return nil
	}
	s := &NumStats{Min: xs[0], Max: xs[0], Mean: stat.Mean(xs, nil)}
	for _, x := range xs[1:] {
		if x < s.Min {
			s.Min = x
		}
		if x > s.Max {
			s.Max = x
		}
	}
	return s
}

func topValues(col j.Column, k int) []ValueCount {
	if k <= 0 {
		return nil
	}
	freq := map[string]int{}
	for i := 0; i < col.Len(); i++ {
		if !col.IsNull(i) {
			freq[j.FormatValue(col, i)]++
		}
	}
	out := make([]ValueCount, 0, len(freq))
	for v, n := range freq {
		out = append(out, ValueCount{Value: v, Count: n})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Count != out[b].Count {
			return out[a].Count > out[b].Count
		}
		return out[a].Value < out[b].Value
	})
	if len(out) > k {
		out = out[:k]
	}
	return out
}

// WriteText renders r as an aligned table.
func (r Report) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "rows: %d\n", r.Rows)
	fmt.Fprintln(tw, "COLUMN\tKIND\tMISSING\tRATIO\tSUMMARY")
	for _, c := range r.Columns {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.3f\t%s\n", c.Name, c.Kind, c.Missing, c.MissingRatio, c.summary())
	}
	return tw.Flush()
}

func (c ColumnProfile) summary() string {
	if c.Num != nil {
		return fmt.Sprintf("min=%.6g max=%.6g mean=%.6g", c.Num.Min, c.Num.Max, c.Num.Mean)
	}
	parts := make([]string, len(c.Top))
	for i, vc := range c.Top {
		parts[i] = fmt.Sprintf("%q:%d", vc.Value, vc.Count)
	}
	return strings.Join(parts, " ")
}
