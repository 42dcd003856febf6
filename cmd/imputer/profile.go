package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wdm0006/imputer/pkg/io/tableio"
	"github.com/wdm0006/imputer/pkg/profile"
)

func newProfileCmd() *cobra.Command {
	var (
		io     ioFlags
		asJSON bool
		topK   int
	)
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Report missing values per column",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, _, err := tableio.Read(io.input, io.readOptions())
			if err != nil {
				return fmt.Errorf("read %s: %w", io.input, err)
			}
			rep := profile.Profile(f, topK)
			log.Debug().Strs("missing", rep.Missing()).Msg("profiled")
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rep)
			}
			return rep.WriteText(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&io.input, "input", "i", "-", "input table (- for stdin)")
	cmd.Flags().StringVar(&io.inType, "input-type", "", "input format (csv, tsv, jsonl, parquet); default from extension")
	cmd.Flags().BoolVar(&io.noHeader, "no-header", false, "CSV input has no header row")
	cmd.Flags().StringVar(&io.delimiter, "delimiter", "", "CSV delimiter; sniffed when empty")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().IntVar(&topK, "top", 3, "most frequent values listed per non-numeric column")
	return cmd
}
