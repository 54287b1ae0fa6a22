package plano

import (
	"context"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/LPereira2025/Plano-Emagrecimento/internal/model"
	"github.com/LPereira2025/Plano-Emagrecimento/internal/service"
	"github.com/LPereira2025/Plano-Emagrecimento/internal/store"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Show or change the weight-loss goal",
}

var (
	goalInitial    float64
	goalTarget     float64
	goalUnit       string
	goalTargetDate string
	goalJSON       bool
)

var goalShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show goal settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, b store.Backend) error {
			return printGoal(cmd, service.LoadGoalSettings(ctx, b, today()))
		})
	},
}

var goalSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set initial weight, target weight and/or target date",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.GoalUpdate{Unit: goalUnit, TargetDate: goalTargetDate}
		if cmd.Flags().Changed("initial") {
			in.InitialWeight = &goalInitial
		}
		if cmd.Flags().Changed("target") {
			in.TargetWeight = &goalTarget
		}
		if in.InitialWeight == nil && in.TargetWeight == nil && in.TargetDate == "" {
			return fmt.Errorf("nothing to set: use --initial, --target or --target-date")
		}
		return withStore(func(ctx context.Context, b store.Backend) error {
			goal, err := service.UpdateGoalSettings(ctx, b, today(), in)
			if err != nil {
				return err
			}
			return printGoal(cmd, goal)
		})
	},
}

func printGoal(cmd *cobra.Command, goal model.GoalSettings) error {
	if goalJSON {
		return writeJSON(cmd, goal)
	}
	t := newTable(cmd)
	t.AppendRows([]table.Row{
		{"Initial weight", fmt.Sprintf("%.1f kg", goal.InitialWeight)},
		{"Target weight", fmt.Sprintf("%.1f kg", goal.TargetWeight)},
		{"Target date", goal.TargetDate},
	})
	t.Render()
	return nil
}

func init() {
	goalSetCmd.Flags().Float64Var(&goalInitial, "initial", 0, "Initial weight")
	goalSetCmd.Flags().Float64Var(&goalTarget, "target", 0, "Target weight")
	goalSetCmd.Flags().StringVar(&goalUnit, "unit", "kg", "Weight unit: kg or lb")
	goalSetCmd.Flags().StringVar(&goalTargetDate, "target-date", "", "Target date YYYY-MM-DD")
	goalShowCmd.Flags().BoolVar(&goalJSON, "json", false, "Output JSON")

	goalCmd.AddCommand(goalShowCmd, goalSetCmd)
	rootCmd.AddCommand(goalCmd)
}
