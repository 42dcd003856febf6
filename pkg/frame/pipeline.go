package frame

import (
	"context"
	"fmt"
)

// Transform is a mutation or validation applied to a Frame.
type Transform interface {
	Name() string
	Apply(ctx context.Context, f *Frame) (*Frame, error)
}

// ColumnTransformer is the fit/transform contract for single-column
// preprocessing steps. Fit may learn from c and returns the transformer to
// use for Transform; stateless implementations return themselves.
// Transform must not mutate c.
type ColumnTransformer interface {
	Fit(ctx context.Context, c Column) (ColumnTransformer, error)
	Transform(ctx context.Context, c Column) (Column, error)
}

// FitTransform fits t on c and transforms c with the fitted result.
func FitTransform(ctx context.Context, t ColumnTransformer, c Column) (Column, error) {
	fitted, err := t.Fit(ctx, c)
	if err != nil {
		return nil, err
	}
	return fitted.Transform(ctx, c)
}

// OnColumn adapts a ColumnTransformer into a Transform over the named column.
func OnColumn(step, column string, t ColumnTransformer) Transform {
	return &columnStep{step: step, column: column, t: t}
}

type columnStep struct {
	step   string
	column string
	t      ColumnTransformer
}

func (s *columnStep) Name() string { return s.step }

// Apply works on a copy of f; a missing column is skipped.
func (s *columnStep) Apply(ctx context.Context, f *Frame) (*Frame, error) {
	col, ok := f.ColumnByName(s.column)
	if !ok {
		return f, nil
	}
	out, err := FitTransform(ctx, s.t, col)
	if err != nil {
		return f, fmt.Errorf("%s: column %s: %w", s.step, s.column, err)
	}
	nf := f.Clone()
	if err := nf.ReplaceColumn(out); err != nil {
		return f, fmt.Errorf("%s: %w", s.step, err)
	}
	return nf, nil
}

// Pipeline composes a sequence of Transforms.
type Pipeline struct {
	steps []Transform
}

func NewPipeline() *Pipeline { return &Pipeline{} }

func (p *Pipeline) Add(t Transform) *Pipeline {
	p.steps = append(p.steps, t)
	return p
}

// Steps returns the configured steps in run order.
func (p *Pipeline) Steps() []Transform { return append([]Transform(nil), p.steps...) }

func (p *Pipeline) Run(ctx context.Context, f *Frame) (*Frame, error) {
	var err error
	cur := f
	for _, t := range p.steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cur, err = t.Apply(ctx, cur)
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}
