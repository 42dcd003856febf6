package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/wdm0006/imputer/pkg/io/tableio"
)

var log = zerolog.New(os.Stderr).With().Timestamp().Logger()

func newRootCmd() *cobra.Command {
	var logLevel, logFormat string
	root := &cobra.Command{
		Use:           "imputer",
		Short:         "Fill missing values in tabular data",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logLevel, logFormat)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format (console, json)")

	root.AddCommand(newRunCmd(), newFillNumericCmd(), newFillCategoricalCmd(), newProfileCmd(), newVersionCmd())
	return root
}

func setupLogging(level, format string) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	zerolog.SetGlobalLevel(lvl)
	switch format {
	case "json":
		log = zerolog.New(os.Stderr).With().Timestamp().Logger()
	case "console", "":
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
	default:
		return fmt.Errorf("unknown log format %q", format)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and exit",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "imputer", version)
		},
	}
}

// ioFlags are the input/output flags shared by the single-column commands.
type ioFlags struct {
	input, output   string
	inType, outType string
	noHeader        bool
	delimiter       string
}

func (f *ioFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "-", "input table (- for stdin)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "-", "output table (- for stdout)")
	cmd.Flags().StringVar(&f.inType, "input-type", "", "input format (csv, tsv, jsonl, parquet); default from extension")
	cmd.Flags().StringVar(&f.outType, "output-type", "", "output format; default from extension")
	cmd.Flags().BoolVar(&f.noHeader, "no-header", false, "CSV input has no header row")
	cmd.Flags().StringVar(&f.delimiter, "delimiter", "", "CSV delimiter; sniffed when empty")
}

func (f *ioFlags) readOptions() tableio.Options {
	return tableio.Options{Format: f.inType, NoHeader: f.noHeader, Delimiter: firstRune(f.delimiter)}
}

func (f *ioFlags) writeOptions() tableio.Options {
	return tableio.Options{Format: f.outType}
}

func firstRune(s string) rune {
	if s == "" {
		return 0
	}
	if s == `\t` {
		return '\t'
	}
	return []rune(s)[0]
}
