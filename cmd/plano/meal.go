package plano

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/LPereira2025/Plano-Emagrecimento/internal/logging"
	"github.com/LPereira2025/Plano-Emagrecimento/internal/model"
	"github.com/LPereira2025/Plano-Emagrecimento/internal/service"
	"github.com/LPereira2025/Plano-Emagrecimento/internal/store"
)

var mealCmd = &cobra.Command{
	Use:   "meal",
	Short: "Keep the meal diary",
	Long:  "Meals are grouped into Pequeno-almoço (breakfast), Almoço (lunch), Meio da tarde (snack) and Jantar (dinner).",
}

var (
	mealDescription string
	mealPhoto       string
	mealJSON        bool
)

var mealLogCmd = &cobra.Command{
	Use:   "log <category>",
	Short: "Add a meal, optionally estimating calories from a photo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		category, err := model.ParseMealCategory(args[0])
		if err != nil {
			return err
		}
		in := service.MealInput{Category: category, Description: mealDescription}
		if mealPhoto != "" {
			image, mimeType, err := readPhoto(mealPhoto)
			if err != nil {
				return err
			}
			est, err := service.EstimateMealCalories(cmd.Context(), newSuggester(), image, mimeType)
			switch {
			case err == nil:
				in.Estimate, in.Image, in.ImageMIME = &est, image, mimeType
			case strings.TrimSpace(mealDescription) != "":
				logging.Log.WithError(err).Warn("saving meal without calorie estimate")
				fmt.Fprintln(cmd.ErrOrStderr(), service.ErrEstimateFailed.Error())
			default:
				return err
			}
		}
		return withStore(func(ctx context.Context, b store.Backend) error {
			saved, err := service.NewMealSaver(b).Save(ctx, in)
			if err != nil {
				return err
			}
			if saved.Record.Calories != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Added to %s: %s (%.0f kcal)\n", saved.Category, saved.Record.Description, *saved.Record.Calories)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added to %s: %s\n", saved.Category, saved.Record.Description)
			return nil
		})
	},
}

func readPhoto(path string) ([]byte, string, error) {
	image, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read photo: %w", err)
	}
	if len(image) == 0 {
		return nil, "", fmt.Errorf("photo %s is empty", path)
	}
	mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if !strings.HasPrefix(mimeType, "image/") {
		mimeType = http.DetectContentType(image)
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, "", fmt.Errorf("%s does not look like an image (%s)", path, mimeType)
	}
	return image, mimeType, nil
}

var mealListCmd = &cobra.Command{
	Use:   "list [category]",
	Short: "List meals per category",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		categories := model.MealCategories
		if len(args) == 1 {
			c, err := model.ParseMealCategory(args[0])
			if err != nil {
				return err
			}
			categories = []model.MealCategory{c}
		}
		return withStore(func(ctx context.Context, b store.Backend) error {
			ledger := service.LoadMealLedger(ctx, b)
			if mealJSON {
				out := make(model.MealLedger, len(categories))
				for _, c := range categories {
					out[c] = ledger[c]
				}
				return writeJSON(cmd, out)
			}
			descWidth := terminalWidth() - 40
			if descWidth < 20 {
				descWidth = 20
			}
			t := newTable(cmd)
			t.AppendHeader(table.Row{"Category", "#", "Description", "kcal"})
			var total float64
			for _, c := range categories {
				for i, r := range ledger[c] {
					kcal := ""
					if r.Calories != nil {
						kcal = fmt.Sprintf("%.0f", *r.Calories)
					}
					t.AppendRow(table.Row{c, i + 1, truncate(r.Description, descWidth), kcal})
				}
				total += service.MealCalories(ledger[c])
			}
			t.AppendFooter(table.Row{"", "", "Total", fmt.Sprintf("%.0f", total)})
			t.Render()
			return nil
		})
	},
}

var mealSuggestCmd = &cobra.Command{
	Use:   "suggest <category>",
	Short: "Ask for a recipe idea that fits the diet plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		category, err := model.ParseMealCategory(args[0])
		if err != nil {
			return err
		}
		s := newSuggester()
		if s == nil {
			logging.Log.Warn(service.ErrSuggesterDisabled.Error())
		}
		text, _ := service.SuggestMeal(cmd.Context(), s, category)
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

var mealPlanCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the diet plan for each meal",
	RunE: func(cmd *cobra.Command, args []string) error {
		width := terminalWidth() - 24
		if width < 30 {
			width = 30
		}
		t := newTable(cmd)
		t.AppendHeader(table.Row{"Category", "Plan"})
		for _, c := range model.MealCategories {
			t.AppendRow(table.Row{c, wrap(service.DietPlan[c], width)})
			t.AppendSeparator()
		}
		t.Render()
		return nil
	},
}

// wrap breaks text at spaces so no line exceeds width display cells.
func wrap(text string, width int) string {
	var lines []string
	line := ""
	for _, word := range strings.Fields(text) {
		if line != "" && runewidth.StringWidth(line)+1+runewidth.StringWidth(word) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		if line == "" {
			line = word
		} else {
			line += " " + word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func init() {
	mealLogCmd.Flags().StringVar(&mealDescription, "description", "", "What you ate")
	mealLogCmd.Flags().StringVar(&mealPhoto, "photo", "", "Photo of the meal for a calorie estimate")
	mealListCmd.Flags().BoolVar(&mealJSON, "json", false, "Output JSON")

	mealCmd.AddCommand(mealLogCmd, mealListCmd, mealSuggestCmd, mealPlanCmd)
	rootCmd.AddCommand(mealCmd)
}
