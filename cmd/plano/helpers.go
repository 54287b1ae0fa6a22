package plano

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/LPereira2025/Plano-Emagrecimento/internal/app"
	"github.com/LPereira2025/Plano-Emagrecimento/internal/db"
	"github.com/LPereira2025/Plano-Emagrecimento/internal/model"
	"github.com/LPereira2025/Plano-Emagrecimento/internal/provider/gemini"
	"github.com/LPereira2025/Plano-Emagrecimento/internal/service"
	"github.com/LPereira2025/Plano-Emagrecimento/internal/store"
)

// newSuggester is swapped in tests.
var newSuggester = defaultSuggester

func defaultSuggester() service.Suggester {
	if strings.TrimSpace(cfg.Gemini.APIKey) == "" {
		return nil
	}
	return gemini.NewClient(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Endpoint)
}

func resolveDBPath() string {
	if dbPath != "" {
		return app.ExpandPath(dbPath)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath
	}
	return app.DefaultDBPath()
}

func openDB() (*sql.DB, error) {
	path := resolveDBPath()
	if err := app.EnsureDBDir(path); err != nil {
		return nil, err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		_ = sqldb.Close()
		return nil, err
	}
	return sqldb, nil
}

func withDB(run func(*sql.DB) error) error {
	sqldb, err := openDB()
	if err != nil {
		return err
	}
	defer sqldb.Close()
	return run(sqldb)
}

func withStore(run func(context.Context, store.Backend) error) error {
	return withDB(func(sqldb *sql.DB) error {
		return run(context.Background(), store.NewSQLite(sqldb))
	})
}

func today() model.Date {
	return model.DateOf(clk.Now())
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(cmd *cobra.Command) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	return t
}

func terminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// truncate shortens s to width display cells.
func truncate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
