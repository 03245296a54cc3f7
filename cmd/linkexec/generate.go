package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/ukaji3/linkexec-go/pkg/linkexec"
	"github.com/ukaji3/linkexec-go/pkg/linkexec/models"
	"go.uber.org/zap"
)

func newGenerateCmd() *cobra.Command {
	var (
		outputPath  string
		sheetName   string
		title       string
		sanitize    bool
		csvEncoding string
	)
	cmd := &cobra.Command{
		Use:   "generate [plan.xlsx]",
		Short: "Generate the execution list workbook from a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("sheet-name") {
				cfg.SheetName = sheetName
			}
			if flags.Changed("title") {
				cfg.Title = title
			}
			if flags.Changed("sanitize") {
				cfg.SanitizeDescriptions = sanitize
			}
			if flags.Changed("csv-encoding") {
				cfg.CSVEncoding = csvEncoding
			}
			if outputPath == "" {
				outputPath = cfg.OutputName
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			opts := cfg.Options()
			opts.Logger = logger
			res, err := linkexec.GenerateFile(args[0], outputPath, opts)
			if err != nil {
				if errors.Is(err, linkexec.ErrEmptyResult) {
					logger.Warn("No tasks generated", zap.String("input", args[0]))
				}
				return fmt.Errorf("generation failed: %w", err)
			}

			logger.Info("Execution list written",
				zap.String("output", outputPath),
				zap.Int("rows", len(res.Rows)))
			printSummary(cmd.OutOrStdout(), &res.Stats)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: config output_name)")
	cmd.Flags().StringVar(&sheetName, "sheet-name", "", "Execution list sheet name")
	cmd.Flags().StringVar(&title, "title", "", "Title band text")
	cmd.Flags().BoolVar(&sanitize, "sanitize", false, "Strip markup from harvested descriptions")
	cmd.Flags().StringVar(&csvEncoding, "csv-encoding", "", "CSV text encoding: utf-8, latin1, windows-1252")
	return cmd
}

// printSummary writes per-activity task counts in first-seen order.
func printSummary(w io.Writer, stats *models.Stats) {
	fmt.Fprintln(w, "Execution Summary:")
	for _, a := range stats.Activities() {
		fmt.Fprintf(w, "  %s: %d\n", a, stats.Get(a))
	}
	fmt.Fprintf(w, "  Total: %d\n", stats.Total())
}
