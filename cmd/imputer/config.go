package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	yaml "gopkg.in/yaml.v3"

	j "github.com/wdm0006/imputer/pkg/frame"
	"github.com/wdm0006/imputer/pkg/io/tableio"
	imp "github.com/wdm0006/imputer/pkg/transform/impute"
	outl "github.com/wdm0006/imputer/pkg/transform/outliers"
	val "github.com/wdm0006/imputer/pkg/transform/validate"
)

type TableConfig struct {
	Path      string `json:"path"`
	Type      string `json:"type"` // csv|tsv|jsonl|parquet; default from extension
	HasHeader *bool  `json:"has_header"`
	Delimiter string `json:"delimiter"`
}

func (t TableConfig) options() tableio.Options {
	return tableio.Options{
		Format:    t.Type,
		NoHeader:  t.HasHeader != nil && !*t.HasHeader,
		Delimiter: firstRune(t.Delimiter),
	}
}

// Config describes a batch run: where to read, which steps to apply in
// order, and where to write. Each step is a single-key object naming the
// step kind.
type Config struct {
	Input  TableConfig                  `json:"input"`
	Output TableConfig                  `json:"output"`
	Steps  []map[string]json.RawMessage `json:"steps"`
}

// step is a configured pipeline step and the column it targets.
type step struct {
	kind   string
	column string
	t      j.Transform
}

var errUnknownConfigFormat = errors.New("unknown config format")

// loadConfig reads a JSON, YAML or TOML config, chosen by extension.
// YAML and TOML are decoded generically and re-encoded as JSON so a single
// set of struct tags covers every format.
func loadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseConfig(b, filepath.Ext(path))
}

func parseConfig(b []byte, ext string) (*Config, error) {
	switch strings.ToLower(ext) {
	case ".json", "":
	case ".yaml", ".yml":
		var generic map[string]any
		if err := yaml.Unmarshal(b, &generic); err != nil {
			return nil, fmt.Errorf("yaml config: %w", err)
		}
		jb, err := json.Marshal(generic)
		if err != nil {
			return nil, fmt.Errorf("yaml config: %w", err)
		}
		b = jb
	case ".toml":
		var generic map[string]any
		if err := toml.Unmarshal(b, &generic); err != nil {
			return nil, fmt.Errorf("toml config: %w", err)
		}
		jb, err := json.Marshal(generic)
		if err != nil {
			return nil, fmt.Errorf("toml config: %w", err)
		}
		b = jb
	default:
		return nil, fmt.Errorf("%w: %s", errUnknownConfigFormat, ext)
	}
	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// buildSteps turns the configured steps into transforms. Unknown step kinds
// are returned in skipped; malformed bodies are errors.
func buildSteps(cfg *Config) (steps []step, skipped []string, err error) {
	for i, entry := range cfg.Steps {
		kinds := make([]string, 0, len(entry))
		for k := range entry {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		for _, k := range kinds {
			s, ok, err := buildStep(k, entry[k])
			if err != nil {
				return nil, nil, fmt.Errorf("step %d (%s): %w", i, k, err)
			}
			if !ok {
				skipped = append(skipped, k)
				continue
			}
			steps = append(steps, s)
		}
	}
	return steps, skipped, nil
}

func buildStep(kind string, raw json.RawMessage) (step, bool, error) {
	var s struct {
		Column string   `json:"column"`
		Min    *float64 `json:"min"`
		Max    *float64 `json:"max"`
		Seed   *int64   `json:"seed"`
		Value  any      `json:"value"`
		Values []string `json:"values"`
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		return step{}, false, err
	}
	if s.Column == "" {
		return step{}, false, errors.New("column is required")
	}
	out := step{kind: kind, column: s.Column}
	switch kind {
	case "impute_random_range":
		min, err := wholeNumber("min", s.Min, imp.DefaultMin)
		if err != nil {
			return step{}, false, err
		}
		max, err := wholeNumber("max", s.Max, imp.DefaultMax)
		if err != nil {
			return step{}, false, err
		}
		opts := []imp.Option{imp.WithRange(min, max)}
		if s.Seed != nil {
			opts = append(opts, imp.WithSeed(*s.Seed))
		}
		r, err := imp.NewRandomRange(opts...)
		if err != nil {
			return step{}, false, err
		}
		out.t = r.Step(s.Column)
	case "impute_most_frequent":
		out.t = &imp.MostFrequent{Column: s.Column}
	case "impute_mean":
		out.t = &imp.Mean{Column: s.Column}
	case "impute_median":
		out.t = &imp.Median{Column: s.Column}
	case "impute_constant":
		if s.Value == nil {
			return step{}, false, errors.New("value is required")
		}
		out.t = &imp.Constant{Column: s.Column, Value: s.Value}
	case "cap_range":
		out.t = &outl.Cap{Column: s.Column, Min: s.Min, Max: s.Max}
	case "validate_range":
		out.t = &val.Range{Column: s.Column, Min: s.Min, Max: s.Max}
	case "validate_in":
		out.t = val.NewInSet(s.Column, s.Values)
	case "validate_complete":
		out.t = &val.Complete{Column: s.Column}
	default:
		return step{}, false, nil
	}
	return out, true, nil
}

func wholeNumber(name string, v *float64, def int64) (int64, error) {
	if v == nil {
		return def, nil
	}
	if *v != math.Trunc(*v) || math.Abs(*v) >= math.MaxInt64 {
		return 0, fmt.Errorf("%s must be a whole number, got %v", name, *v)
	}
	return int64(*v), nil
}
