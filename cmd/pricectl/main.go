package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"limaprices/adapters/excel"
	"limaprices/adapters/plot"
	"limaprices/domain/core"
	"limaprices/domain/prices"
	"limaprices/internal"
	"limaprices/internal/analysis"
	"limaprices/internal/config"
	"limaprices/internal/dataset"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	_ = godotenv.Load()

	var dataFile string
	rootCmd := &cobra.Command{
		Use:           "pricectl",
		Short:         "Lima apartment price tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&dataFile, "data", dataFileDefault(), "price series file (.csv or .xlsx)")

	load := func() (*prices.Table, error) {
		cfg := excel.DefaultExcelConfig()
		cfg.FilePath = dataFile
		return dataset.NewLoader(cfg, internal.NewLogger(internal.LogLevelWarn)).Load()
	}

	rootCmd.AddCommand(
		newReturnsCmd(load),
		newDescribeCmd(load),
		newExportCmd(load),
		newPlotCmd(load),
	)
	return rootCmd
}

func dataFileDefault() string {
	if v := strings.TrimSpace(os.Getenv("DATA_FILE")); v != "" {
		return v
	}
	return config.DefaultDataFile
}

type tableLoader func() (*prices.Table, error)

func newReturnsCmd(load tableLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "returns",
		Short: "Print the return of investment of every district",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := load()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DISTRICT\tYEARS\tRETURN")
			for _, s := range table.AllSeries() {
				percent, years, err := prices.CalculateReturns(s)
				if err != nil {
					fmt.Fprintf(w, "%s\t-\tno observations\n", s.Name)
					continue
				}
				fmt.Fprintf(w, "%s\t%d\t%s\n", s.Name, years, prices.FormatPercent(percent))
			}
			return w.Flush()
		},
	}
}

func newDescribeCmd(load tableLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "describe [district]",
		Short: "Print price statistics for one or all districts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := load()
			if err != nil {
				return err
			}

			var summaries []analysis.DistrictStats
			if len(args) == 1 {
				s, err := table.Column(args[0])
				if err != nil {
					return err
				}
				summary, err := analysis.Summarize(s)
				if err != nil {
					return err
				}
				summaries = append(summaries, summary)
			} else {
				var skipped []string
				summaries, skipped = analysis.SummarizeTable(table)
				for _, name := range skipped {
					fmt.Fprintf(cmd.ErrOrStderr(), "skipping %s: no observations\n", name)
				}
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(w, "DISTRICT\tN\tFROM\tTO\tMIN\tMAX\tMEAN\tMEDIAN\tVOL %\tCAGR %\tRETURN\t")
			for _, d := range summaries {
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%.0f\t%.0f\t%.1f\t%.1f\t%.2f\t%.2f\t%s\t\n",
					d.District, d.Observations,
					core.FormatMonth(d.FirstMonth), core.FormatMonth(d.LastMonth),
					d.MinPrice, d.MaxPrice, d.MeanPrice, d.MedianPrice,
					d.Volatility, d.AnnualizedGrowth, prices.FormatPercent(d.ReturnPercent))
			}
			return w.Flush()
		},
	}
}

func newExportCmd(load tableLoader) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write returns, statistics and prices to an Excel workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := load()
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}
			if err := excel.WriteWorkbook(f, workbookSheets(table)...); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "returns.xlsx", "output workbook")
	return cmd
}

// workbookSheets lays the table out as Returns, Stats and Prices sheets
func workbookSheets(table *prices.Table) []excel.Sheet {
	returns := excel.Sheet{
		Name:    "Returns",
		Headers: []string{"District", "First Month", "Last Month", "Years", "Return %"},
	}
	for _, s := range table.AllSeries() {
		percent, years, err := prices.CalculateReturns(s)
		if err != nil {
			continue
		}
		observed := s.DropMissing()
		returns.Rows = append(returns.Rows, []interface{}{
			s.Name,
			core.FormatMonth(observed.Points[0].Month),
			core.FormatMonth(observed.Points[len(observed.Points)-1].Month),
			years,
			percent,
		})
	}

	stats := excel.Sheet{
		Name: "Stats",
		Headers: []string{"District", "Observations", "Min", "Max", "Mean", "Median",
			"Volatility %", "Annualized Growth %"},
	}
	summaries, _ := analysis.SummarizeTable(table)
	for _, d := range summaries {
		stats.Rows = append(stats.Rows, []interface{}{
			d.District, d.Observations, d.MinPrice, d.MaxPrice, d.MeanPrice, d.MedianPrice,
			d.Volatility, d.AnnualizedGrowth,
		})
	}

	// month labels stay text so the workbook loads back as a dataset
	pricesSheet := excel.Sheet{
		Name:    "Prices",
		Headers: append([]string{"Month"}, table.Districts()...),
	}
	all := table.AllSeries()
	for i, m := range table.Months() {
		row := make([]interface{}, 0, len(all)+1)
		row = append(row, core.FormatDate(m))
		for _, s := range all {
			if p := s.Points[i]; p.Missing() {
				row = append(row, "")
			} else {
				row = append(row, p.Value)
			}
		}
		pricesSheet.Rows = append(pricesSheet.Rows, row)
	}

	return []excel.Sheet{returns, stats, pricesSheet}
}

func newPlotCmd(load tableLoader) *cobra.Command {
	var out, district string
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Render the price chart to a PNG file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := load()
			if err != nil {
				return err
			}

			series, err := table.Select(district)
			if err != nil {
				return err
			}

			opts := plot.DefaultOptions()
			if district != prices.AllDistricts {
				opts.Title = fmt.Sprintf("%s, %s", opts.Title, district)
			}
			if err := plot.SavePNG(out, series, opts); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "prices.png", "output image")
	cmd.Flags().StringVar(&district, "district", prices.AllDistricts, "district to plot")
	return cmd
}
