package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"biascope/adapters/fairness"
	"biascope/adapters/tabular"
	"biascope/domain/bias"
	"biascope/internal"
	"biascope/internal/profiling"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "biascope",
		Short: "Dataset-level bias diagnostics for tabular data",
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newProfileCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newAnalyzeCmd() *cobra.Command {
	var sensitive, target string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Run the bias analysis over a CSV or Excel file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := tabular.NewReader(internal.DefaultLogger)
			tbl, err := reader.ReadTable(args[0])
			if err != nil {
				return err
			}
			if sensitive == target {
				return fmt.Errorf("sensitive and target columns must differ")
			}

			report, err := fairness.NewAnalyzer().Analyze(tbl, sensitive, target)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			printReport(report)
			return nil
		},
	}

	cmd.Flags().StringVarP(&sensitive, "sensitive", "s", "", "sensitive attribute column (required)")
	cmd.Flags().StringVarP(&target, "target", "t", "", "target/outcome column (required)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the raw report as JSON")
	cmd.MarkFlagRequired("sensitive")
	cmd.MarkFlagRequired("target")
	return cmd
}

func newProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile [file]",
		Short: "Print per-column summary statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := tabular.NewReader(internal.DefaultLogger)
			tbl, err := reader.ReadTable(args[0])
			if err != nil {
				return err
			}

			profiles, err := profiling.NewProfiler(4).ProfileTable(context.Background(), tbl)
			if err != nil {
				return err
			}

			fmt.Printf("Rows: %s  Columns: %d\n\n", humanize.Comma(int64(tbl.RowCount())), tbl.ColumnCount())
			for _, p := range profiles {
				fmt.Printf("Column: %s\n", p.Name)
				fmt.Printf("  Type: %s\n", p.Type)
				fmt.Printf("  Missing: %.2f%%\n", p.MissingRate*100)
				fmt.Printf("  Distinct: %d\n", p.Cardinality)
				if p.Type == "numeric" {
					fmt.Printf("  Mean: %.4f  Min: %.4f  Max: %.4f\n", p.Mean, p.Min, p.Max)
				}
			}
			return nil
		},
	}
}

func printReport(report *bias.Report) {
	fmt.Printf("Rows: %s  Columns: %d\n", humanize.Comma(int64(report.RowCount)), report.ColumnCount)
	if report.TargetEncoded {
		fmt.Printf("Note: target column %q was non-numeric and has been encoded\n", report.TargetColumn)
	}
	fmt.Printf("\nRisk: %s\n\n", report.RiskLevel.Headline())

	fmt.Println("Group proportions and target means:")
	for _, g := range report.Groups {
		marker := " "
		if g == report.DominantGroup {
			marker = "*"
		}
		fmt.Printf("  %s %-20s %6.2f%%  mean=%.4f\n",
			marker, g, report.GroupProportions[g]*100, report.GroupTargetMeans[g])
	}

	fmt.Printf("\nStatistical parity difference: %.4f\n", report.StatisticalParityDifference)
	fmt.Printf("Disparate impact ratio:        %.4f\n", report.DisparateImpactRatio)
	fmt.Printf("\nFlags: representation=%v label=%v fairness=%v\n",
		report.RepresentationFlag, report.LabelFlag, report.FairnessFlag)

	for _, advice := range bias.BuildAdvice(report) {
		fmt.Printf("\n[%s] %s\n%s\n", advice.Severity, advice.Title, advice.Body)
	}
}
