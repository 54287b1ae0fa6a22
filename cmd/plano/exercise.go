package plano

import (
	"context"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/LPereira2025/Plano-Emagrecimento/internal/service"
	"github.com/LPereira2025/Plano-Emagrecimento/internal/store"
)

var exerciseCmd = &cobra.Command{
	Use:   "exercise",
	Short: "Log exercise and get suggestions",
}

var exerciseJSON bool

var exerciseLogCmd = &cobra.Command{
	Use:   "log <description>",
	Short: "Record an exercise",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		label := joinArgs(args)
		return withStore(func(ctx context.Context, b store.Backend) error {
			logged, err := service.RecordExercise(ctx, b, label)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged exercise %d: %s\n", len(logged), logged[len(logged)-1])
			return nil
		})
	},
}

var exerciseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List logged exercises",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, b store.Backend) error {
			logged := service.LoadExercises(ctx, b)
			if exerciseJSON {
				return writeJSON(cmd, logged)
			}
			t := newTable(cmd)
			t.AppendHeader(table.Row{"#", "Exercise"})
			for i, label := range logged {
				t.AppendRow(table.Row{i + 1, truncate(label, terminalWidth()-12)})
			}
			t.Render()
			return nil
		})
	},
}

var exerciseSuggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest three at-home exercises",
	RunE: func(cmd *cobra.Command, args []string) error {
		items, fromService := service.SuggestExercises(cmd.Context(), newSuggester())
		if exerciseJSON {
			return writeJSON(cmd, items)
		}
		t := newTable(cmd)
		t.AppendHeader(table.Row{"Exercise", "How"})
		for _, it := range items {
			t.AppendRow(table.Row{it.Name, it.Description})
		}
		if !fromService {
			t.SetCaption("offline suggestions")
		}
		t.Render()
		return nil
	},
}

func init() {
	exerciseListCmd.Flags().BoolVar(&exerciseJSON, "json", false, "Output JSON")
	exerciseSuggestCmd.Flags().BoolVar(&exerciseJSON, "json", false, "Output JSON")

	exerciseCmd.AddCommand(exerciseLogCmd, exerciseListCmd, exerciseSuggestCmd)
	rootCmd.AddCommand(exerciseCmd)
}
