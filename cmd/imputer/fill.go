package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wdm0006/imputer/pkg/features"
	j "github.com/wdm0006/imputer/pkg/frame"
	"github.com/wdm0006/imputer/pkg/io/tableio"
	imp "github.com/wdm0006/imputer/pkg/transform/impute"
)

func newFillNumericCmd() *cobra.Command {
	var (
		io       ioFlags
		column   string
		min, max int64
		seed     int64
	)
	cmd := &cobra.Command{
		Use:   "fill-numeric",
		Short: "Fill a numeric column with random integers in [min, max]",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []imp.Option{imp.WithRange(min, max)}
			if cmd.Flags().Changed("seed") {
				opts = append(opts, imp.WithSeed(seed))
			}
			return fillColumn(cmd, &io, column, func(f *j.Frame) (j.Column, error) {
				return features.FillNumericColumn(cmd.Context(), f, column, opts...)
			})
		},
	}
	io.register(cmd)
	cmd.Flags().StringVar(&column, "column", features.AgeColumn, "column to fill")
	cmd.Flags().Int64Var(&min, "min", imp.DefaultMin, "smallest value drawn")
	cmd.Flags().Int64Var(&max, "max", imp.DefaultMax, "largest value drawn")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed; unseeded when not set")
	return cmd
}

func newFillCategoricalCmd() *cobra.Command {
	var (
		io     ioFlags
		column string
	)
	cmd := &cobra.Command{
		Use:   "fill-categorical",
		Short: "Fill a column with its most frequent value",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fillColumn(cmd, &io, column, func(f *j.Frame) (j.Column, error) {
				return features.FillCategoricalColumn(cmd.Context(), f, column)
			})
		},
	}
	io.register(cmd)
	cmd.Flags().StringVar(&column, "column", features.EmbarkedColumn, "column to fill")
	return cmd
}

// fillColumn reads the input, replaces column with the result of fill and
// writes the whole table out.
func fillColumn(cmd *cobra.Command, io *ioFlags, column string, fill func(*j.Frame) (j.Column, error)) error {
	f, warn, err := tableio.Read(io.input, io.readOptions())
	if err != nil {
		return fmt.Errorf("read %s: %w", io.input, err)
	}
	if warn != "" {
		log.Warn().Str("input", io.input).Str("repairs", warn).Msg("input repaired")
	}
	before := missingIn(f, column)
	filled, err := fill(f)
	if err != nil {
		return err
	}
	out := f.Clone()
	if err := out.ReplaceColumn(filled); err != nil {
		return err
	}
	log.Info().
		Str("column", column).
		Str("kind", filled.Kind().String()).
		Int("filled", before-filled.NullCount()).
		Msg("column filled")
	return tableio.Write(io.output, out, io.writeOptions())
}

// missingIn returns the missing cell count of column, or -1 if f has no
// such column.
func missingIn(f *j.Frame, column string) int {
	c, ok := f.ColumnByName(column)
	if !ok {
		return -1
	}
	return c.NullCount()
}
