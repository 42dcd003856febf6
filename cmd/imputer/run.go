package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wdm0006/imputer/pkg/io/tableio"
)

func newRunCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the imputation steps of a config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("no config provided; try --config <file>")
			}
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			return runConfig(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "pipeline config (.json, .yaml, .toml)")
	return cmd
}

func runConfig(ctx context.Context, cfg *Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	steps, skipped, err := buildSteps(cfg)
	if err != nil {
		return err
	}
	for _, k := range skipped {
		log.Warn().Str("step", k).Msg("unknown step ignored")
	}

	f, warn, err := tableio.Read(cfg.Input.Path, cfg.Input.options())
	if err != nil {
		return fmt.Errorf("read %s: %w", cfg.Input.Path, err)
	}
	if warn != "" {
		log.Warn().Str("input", cfg.Input.Path).Str("repairs", warn).Msg("input repaired")
	}
	log.Info().Str("input", cfg.Input.Path).Int("rows", f.Rows()).Int("cols", f.Cols()).Msg("loaded")

	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		before := missingIn(f, s.column)
		if before < 0 {
			log.Warn().Str("step", s.kind).Str("column", s.column).Msg("column not found; step skipped")
			continue
		}
		if f, err = s.t.Apply(ctx, f); err != nil {
			return err
		}
		log.Info().
			Str("step", s.kind).
			Str("column", s.column).
			Int("filled", before-missingIn(f, s.column)).
			Int("missing", missingIn(f, s.column)).
			Msg("step done")
	}

	if err := tableio.Write(cfg.Output.Path, f, cfg.Output.options()); err != nil {
		return fmt.Errorf("write %s: %w", cfg.Output.Path, err)
	}
	log.Info().Str("output", cfg.Output.Path).Int("rows", f.Rows()).Msg("written")
	return nil
}
