package plano

import (
	"context"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/LPereira2025/Plano-Emagrecimento/internal/service"
	"github.com/LPereira2025/Plano-Emagrecimento/internal/store"
)

var weightCmd = &cobra.Command{
	Use:   "weight",
	Short: "Log body weight and view the trend",
}

var (
	weightUnit string
	weightDate string
	weightJSON bool
)

var weightLogCmd = &cobra.Command{
	Use:   "log <weight>",
	Short: "Record today's weight (replaces an entry on the same date)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kg, err := service.ParseWeightInput(args[0], weightUnit)
		if err != nil {
			return err
		}
		return withStore(func(ctx context.Context, b store.Backend) error {
			rec, err := service.RecordWeight(ctx, b, clk, service.WeightInput{Weight: kg, Date: weightDate})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %.1f kg on %s (%d entries)\n", rec.Weight, rec.Date, len(rec.Series))
			return nil
		})
	},
}

var weightListCmd = &cobra.Command{
	Use:   "list",
	Short: "List weight entries by date",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, b store.Backend) error {
			trend := service.ComputeTrend(service.LoadWeightSeries(ctx, b), service.LoadGoalSettings(ctx, b, today()), today())
			if weightJSON {
				return writeJSON(cmd, trend.Series)
			}
			if weightUnit == "" {
				weightUnit = "kg"
			}
			t := newTable(cmd)
			t.AppendHeader(table.Row{"Date", "Weight", "Unit"})
			for _, e := range trend.Series {
				w, err := service.WeightFromKg(e.Weight, weightUnit)
				if err != nil {
					return err
				}
				t.AppendRow(table.Row{e.Date, fmt.Sprintf("%.1f", w), weightUnit})
			}
			t.Render()
			return nil
		})
	},
}

var weightStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show current weight, total loss, distance to goal and weekly change",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, b store.Backend) error {
			now := today()
			trend := service.ComputeTrend(service.LoadWeightSeries(ctx, b), service.LoadGoalSettings(ctx, b, now), now)
			if weightJSON {
				return writeJSON(cmd, trend)
			}
			weekly := "n/a"
			if trend.WeeklyChange != nil {
				weekly = fmt.Sprintf("%+.1f kg", *trend.WeeklyChange)
				if trend.Improving() {
					weekly += " (a descer)"
				} else {
					weekly += " (a subir)"
				}
			}
			t := newTable(cmd)
			t.AppendRows([]table.Row{
				{"Current weight", fmt.Sprintf("%.1f kg", trend.CurrentWeight)},
				{"Initial weight", fmt.Sprintf("%.1f kg", trend.InitialWeight)},
				{"Target weight", fmt.Sprintf("%.1f kg", trend.TargetWeight)},
				{"Total loss", fmt.Sprintf("%.1f kg", trend.TotalLoss)},
				{"To goal", fmt.Sprintf("%.1f kg", trend.ToGoal)},
				{"Weekly change", weekly},
				{"Target date", fmt.Sprintf("%s (%d days)", trend.TargetDate, trend.DaysToTarget)},
			})
			t.Render()
			return nil
		})
	},
}

func init() {
	weightLogCmd.Flags().StringVar(&weightUnit, "unit", "kg", "Weight unit: kg or lb")
	weightLogCmd.Flags().StringVar(&weightDate, "date", "", "Date YYYY-MM-DD (default today)")
	weightListCmd.Flags().StringVar(&weightUnit, "unit", "kg", "Output unit: kg or lb")
	weightListCmd.Flags().BoolVar(&weightJSON, "json", false, "Output JSON")
	weightStatsCmd.Flags().BoolVar(&weightJSON, "json", false, "Output JSON")

	weightCmd.AddCommand(weightLogCmd, weightListCmd, weightStatsCmd)
	rootCmd.AddCommand(weightCmd)
}
