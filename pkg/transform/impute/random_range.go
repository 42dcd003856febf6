package impute

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/exp/rand"

	j "github.com/wdm0006/imputer/pkg/frame"
)

const (
	DefaultMin int64 = 1
	DefaultMax int64 = 80
)

// RandomRange fills missing numeric values with integers drawn uniformly
// from [min, max]. Its configuration is fixed at construction and it keeps
// no fitted state, so one instance may be shared across goroutines.
type RandomRange struct {
	min    int64
	max    int64
	seed   int64
	seeded bool
}

// Option configures a RandomRange.
type Option func(*RandomRange)

// WithRange sets the inclusive bounds of generated values.
func WithRange(min, max int64) Option {
	return func(r *RandomRange) { r.min, r.max = min, max }
}

// WithSeed makes the generated values reproducible.
func WithSeed(seed int64) Option {
	return func(r *RandomRange) { r.seed, r.seeded = seed, true }
}

// NewRandomRange builds an imputer over [1, 80] unless WithRange says
// otherwise. It returns ErrInvalidRange when min > max.
func NewRandomRange(opts ...Option) (*RandomRange, error) {
	r := &RandomRange{min: DefaultMin, max: DefaultMax}
	for _, o := range opts {
		o(r)
	}
	if r.min > r.max {
		return nil, fmt.Errorf("impute_random_range: %w: min %d > max %d", ErrInvalidRange, r.min, r.max)
	}
	if r.max-r.min+1 <= 0 {
		return nil, fmt.Errorf("impute_random_range: %w: [%d, %d] overflows int64", ErrInvalidRange, r.min, r.max)
	}
	return r, nil
}

// Step returns a pipeline step filling the named column.
func (r *RandomRange) Step(column string) j.Transform {
	return j.OnColumn("impute_random_range", column, r)
}

func (r *RandomRange) Min() int64 { return r.min }
func (r *RandomRange) Max() int64 { return r.max }

// Seed returns the configured seed and whether one was set.
func (r *RandomRange) Seed() (int64, bool) { return r.seed, r.seeded }

// Fit learns nothing and returns r itself.
func (r *RandomRange) Fit(ctx context.Context, c j.Column) (j.ColumnTransformer, error) {
	return r, nil
}

// Transform returns a copy of c with every missing cell replaced by a draw
// from [min, max]. Draws are assigned to missing rows in index order. When
// something was filled, a float column comes back as an int column, unless
// a present value lies outside the int64 range.
// Columns without missing values come back unchanged and consume no draws.
func (r *RandomRange) Transform(ctx context.Context, c j.Column) (j.Column, error) {
	switch c.(type) {
	case *j.IntColumn, *j.FloatColumn:
	default:
		return nil, fmt.Errorf("impute_random_range: %w: %s", ErrUnsupportedKind, c.Kind())
	}
	out := c.Clone()
	missing := missingRows(out)
	if len(missing) == 0 {
		return out, nil
	}

	rng := r.newRand()
	span := r.max - r.min + 1
	switch col := out.(type) {
	case *j.IntColumn:
		for _, i := range missing {
			col.Set(i, r.min+rng.Int63n(span))
		}
	case *j.FloatColumn:
		for _, i := range missing {
			col.Set(i, float64(r.min+rng.Int63n(span)))
		}
		if ic, ok := col.ToInt(); ok {
			return ic, nil
		}
	}
	return out, nil
}

// unseededCalls separates unseeded generators created in the same clock tick.
var unseededCalls atomic.Uint64

// newRand returns a generator local to one Transform call.
func (r *RandomRange) newRand() *rand.Rand {
	seed := uint64(time.Now().UnixNano()) ^ (unseededCalls.Add(1) * 0x9e3779b97f4a7c15)
	if r.seeded {
		seed = uint64(r.seed)
	}
	return rand.New(rand.NewSource(seed))
}

func missingRows(c j.Column) []int {
	var rows []int
	for i := 0; i < c.Len(); i++ {
		if c.IsNull(i) {
			rows = append(rows, i)
		}
	}
	return rows
}
