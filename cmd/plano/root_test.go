package plano

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/LPereira2025/Plano-Emagrecimento/internal/clock"
	"github.com/LPereira2025/Plano-Emagrecimento/internal/model"
	"github.com/LPereira2025/Plano-Emagrecimento/internal/service"
)

// setupCLI points plano at a temp dir and resets flag state shared between runs.
func setupCLI(t *testing.T, now string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("PLANO_DIR", dir)
	t.Setenv("API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("PLANO_GEMINI_API_KEY", "")

	ts, err := time.ParseInLocation("2006-01-02 15:04", now, time.Local)
	if err != nil {
		t.Fatalf("parse clock: %v", err)
	}
	prevClock, prevSuggester := clk, newSuggester
	clk = clock.NewFixed(ts)
	t.Cleanup(func() {
		clk, newSuggester = prevClock, prevSuggester
	})

	dbPath, cfgFile, logLevel = "", "", ""
	initDemo = false
	weightUnit, weightDate, weightJSON = "kg", "", false
	goalUnit, goalTargetDate, goalJSON = "kg", "", false
	mealDescription, mealPhoto, mealJSON = "", "", false
	exerciseJSON = false
	assetsBaseURL, assetsListen = "", ""
	dataOut, dataIn, dataReplace, dataYes = "", "", false, false
	return filepath.Join(dir, "plano.db")
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCLI(t, args...)
	if err != nil {
		t.Fatalf("plano %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func TestRootHelp(t *testing.T) {
	setupCLI(t, "2024-07-15 09:00")
	out := mustRun(t, "--help")
	if !strings.Contains(out, "weight") || !strings.Contains(out, "meal") {
		t.Fatalf("expected command list in help, got %q", out)
	}
}

func TestInitCommandIdempotent(t *testing.T) {
	path := setupCLI(t, "2024-07-15 09:00")
	for i := 0; i < 2; i++ {
		mustRun(t, "--db", path, "init", "--demo")
	}
	out := mustRun(t, "--db", path, "weight", "list", "--json")
	var series []model.WeightEntry
	if err := json.Unmarshal([]byte(out), &series); err != nil {
		t.Fatalf("decode series: %v\n%s", err, out)
	}
	if len(series) != len(service.SampleWeightData) {
		t.Fatalf("expected sample data seeded once, got %d entries", len(series))
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(path), "config.yaml")); err != nil {
		t.Fatalf("expected default config to be written: %v", err)
	}
}

func TestWeightLogAndStats(t *testing.T) {
	path := setupCLI(t, "2024-07-10 20:00")
	out := mustRun(t, "--db", path, "weight", "log", "85", "--date", " 2024-07-01 ")
	if !strings.Contains(out, "on 2024-07-01 (1 entries)") {
		t.Fatalf("expected stored date in confirmation, got %q", out)
	}
	weightDate = ""
	mustRun(t, "--db", path, "weight", "log", "84", "--date", "2024-07-08")
	weightDate = ""
	out = mustRun(t, "--db", path, "weight", "log", "83,5")
	if !strings.Contains(out, "on 2024-07-10") {
		t.Fatalf("expected today's date in confirmation, got %q", out)
	}

	out = mustRun(t, "--db", path, "weight", "stats", "--json")
	var trend service.Trend
	if err := json.Unmarshal([]byte(out), &trend); err != nil {
		t.Fatalf("decode trend: %v\n%s", err, out)
	}
	if trend.CurrentWeight != 83.5 {
		t.Fatalf("expected current 83.5, got %.2f", trend.CurrentWeight)
	}
	if trend.WeeklyChange == nil || *trend.WeeklyChange != -0.5 {
		t.Fatalf("expected weekly change -0.5, got %v", trend.WeeklyChange)
	}
	if len(trend.Series) != 3 || trend.Series[2].Date != "2024-07-10" {
		t.Fatalf("unexpected series %+v", trend.Series)
	}
}

func TestWeightLogRejectsImplausibleValue(t *testing.T) {
	path := setupCLI(t, "2024-07-10 20:00")
	if _, err := runCLI(t, "--db", path, "weight", "log", "5"); err == nil {
		t.Fatalf("expected weight 5 to be rejected")
	}
	out := mustRun(t, "--db", path, "weight", "list", "--json")
	if strings.TrimSpace(out) != "[]" {
		t.Fatalf("expected empty series, got %s", out)
	}
}

func TestGoalSetAndShow(t *testing.T) {
	path := setupCLI(t, "2024-07-15 09:00")
	mustRun(t, "--db", path, "goal", "set", "--target", "72", "--target-date", "2024-12-31")
	out := mustRun(t, "--db", path, "goal", "show", "--json")
	var goal model.GoalSettings
	if err := json.Unmarshal([]byte(out), &goal); err != nil {
		t.Fatalf("decode goal: %v\n%s", err, out)
	}
	if goal.TargetWeight != 72 || goal.TargetDate != "2024-12-31" || goal.InitialWeight != 85 {
		t.Fatalf("unexpected goal %+v", goal)
	}
}

type stubSuggester struct{}

func (stubSuggester) EstimateCalories(context.Context, []byte, string) (model.CalorieEstimate, error) {
	return model.CalorieEstimate{TotalCalories: 610, Items: []model.MealItem{{Name: "Arroz", Calories: 250}, {Name: "Bacalhau", Calories: 360}}}, nil
}

func (stubSuggester) MealSuggestion(context.Context, model.MealCategory, string) (string, error) {
	return "Salada de grão", nil
}

func (stubSuggester) MotivationalQuote(context.Context) (string, error) {
	return "Um dia de cada vez.", nil
}

func (stubSuggester) ExerciseSuggestions(context.Context) ([]model.Exercise, error) {
	return []model.Exercise{{Name: "Burpees", Description: "3x10"}}, nil
}

func TestMealLogWithPhoto(t *testing.T) {
	path := setupCLI(t, "2024-07-15 13:00")
	newSuggester = func() service.Suggester { return stubSuggester{} }
	photo := filepath.Join(t.TempDir(), "almoco.jpg")
	if err := os.WriteFile(photo, []byte{0xff, 0xd8, 0xff, 0xe0}, 0o600); err != nil {
		t.Fatalf("write photo: %v", err)
	}

	out := mustRun(t, "--db", path, "meal", "log", "almoco", "--photo", photo)
	if !strings.Contains(out, "Refeição da foto: Arroz, Bacalhau") || !strings.Contains(out, "610 kcal") {
		t.Fatalf("unexpected output %q", out)
	}
	mealPhoto = ""
	mustRun(t, "--db", path, "meal", "log", "jantar", "--description", "Sopa de legumes")

	out = mustRun(t, "--db", path, "meal", "list", "--json")
	var ledger model.MealLedger
	if err := json.Unmarshal([]byte(out), &ledger); err != nil {
		t.Fatalf("decode ledger: %v\n%s", err, out)
	}
	if len(ledger[model.Lunch]) != 1 || ledger[model.Lunch][0].Calories == nil || *ledger[model.Lunch][0].Calories != 610 {
		t.Fatalf("unexpected lunch %+v", ledger[model.Lunch])
	}
	if !strings.HasPrefix(ledger[model.Lunch][0].ImageURL, "data:image/jpeg;base64,") {
		t.Fatalf("expected data URL, got %q", ledger[model.Lunch][0].ImageURL)
	}
	if len(ledger[model.Dinner]) != 1 || len(ledger[model.Breakfast]) != 0 {
		t.Fatalf("unexpected ledger %+v", ledger)
	}
}

func TestMealLogPhotoWithoutServiceFails(t *testing.T) {
	path := setupCLI(t, "2024-07-15 13:00")
	photo := filepath.Join(t.TempDir(), "jantar.png")
	if err := os.WriteFile(photo, []byte("\x89PNG\r\n\x1a\n"), 0o600); err != nil {
		t.Fatalf("write photo: %v", err)
	}
	_, err := runCLI(t, "--db", path, "meal", "log", "dinner", "--photo", photo)
	if err == nil || !strings.Contains(err.Error(), "Falha ao estimar calorias") {
		t.Fatalf("expected estimate failure, got %v", err)
	}
}

func TestMealLogRejectsUnknownCategory(t *testing.T) {
	path := setupCLI(t, "2024-07-15 13:00")
	if _, err := runCLI(t, "--db", path, "meal", "log", "ceia", "--description", "x"); err == nil {
		t.Fatalf("expected unknown category to fail")
	}
}

func TestSuggestionsFallBackWithoutService(t *testing.T) {
	setupCLI(t, "2024-07-15 13:00")
	out := mustRun(t, "exercise", "suggest", "--json")
	var items []model.Exercise
	if err := json.Unmarshal([]byte(out), &items); err != nil {
		t.Fatalf("decode exercises: %v\n%s", err, out)
	}
	if len(items) != 3 || items[0] != service.FallbackExercises[0] {
		t.Fatalf("expected fallback exercises, got %+v", items)
	}

	out = mustRun(t, "quote")
	if !strings.Contains(out, "Acredite em si mesmo") {
		t.Fatalf("expected default quote, got %q", out)
	}
	out = mustRun(t, "meal", "suggest", "lunch")
	if strings.TrimSpace(out) != service.MealSuggestionFailure {
		t.Fatalf("expected failure text, got %q", out)
	}
}

func TestExerciseLogAndList(t *testing.T) {
	path := setupCLI(t, "2024-07-15 13:00")
	mustRun(t, "--db", path, "exercise", "log", "Caminhada", "30", "min")
	out := mustRun(t, "--db", path, "exercise", "list", "--json")
	var logged []string
	if err := json.Unmarshal([]byte(out), &logged); err != nil {
		t.Fatalf("decode exercises: %v\n%s", err, out)
	}
	if len(logged) != 1 || logged[0] != "Caminhada 30 min" {
		t.Fatalf("unexpected exercises %v", logged)
	}
}

func TestDataExportImportReset(t *testing.T) {
	path := setupCLI(t, "2024-07-15 09:00")
	mustRun(t, "--db", path, "weight", "log", "84.2")
	export := filepath.Join(t.TempDir(), "backup.json")
	mustRun(t, "--db", path, "data", "export", "--out", export)

	if _, err := runCLI(t, "--db", path, "data", "reset"); err == nil {
		t.Fatalf("expected reset without --yes to fail")
	}
	mustRun(t, "--db", path, "data", "reset", "--yes")
	if out := mustRun(t, "--db", path, "weight", "list", "--json"); strings.TrimSpace(out) != "[]" {
		t.Fatalf("expected empty series after reset, got %s", out)
	}

	mustRun(t, "--db", path, "data", "import", "--in", export, "--replace")
	out := mustRun(t, "--db", path, "weight", "list", "--json")
	if !strings.Contains(out, "84.2") {
		t.Fatalf("expected imported weight, got %s", out)
	}
}

func TestAssetsInstallThenServeOffline(t *testing.T) {
	path := setupCLI(t, "2024-07-15 09:00")
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("shell:" + r.URL.Path))
	}))

	mustRun(t, "--db", path, "assets", "install", "--base-url", ts.URL)
	ts.Close()

	out := mustRun(t, "--db", path, "assets", "get", "/index.html")
	if out != "shell:/index.html" {
		t.Fatalf("expected cached body, got %q", out)
	}
	out = mustRun(t, "--db", path, "assets", "status")
	if !strings.Contains(out, "meu-plano-fit-v3") {
		t.Fatalf("expected installed version in status, got %q", out)
	}
}

func TestRemindLogFileDefaultsToDataDir(t *testing.T) {
	setupCLI(t, "2024-07-15 09:00")
	prev := cfg
	t.Cleanup(func() { cfg = prev })

	cfg.Log.File = ""
	if got := remindLogFile(); got != filepath.Join(os.Getenv("PLANO_DIR"), "plano.log") {
		t.Fatalf("unexpected default log file %q", got)
	}
	cfg.Log.File = "/tmp/plano-custom.log"
	if got := remindLogFile(); got != "/tmp/plano-custom.log" {
		t.Fatalf("expected configured log file, got %q", got)
	}
}

func TestVersionCommand(t *testing.T) {
	setupCLI(t, "2024-07-15 09:00")
	out := mustRun(t, "version")
	if !strings.Contains(out, "plano ") || !strings.Contains(out, "meu-plano-fit-v3") {
		t.Fatalf("unexpected version output %q", out)
	}
}
