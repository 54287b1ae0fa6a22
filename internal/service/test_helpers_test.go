package service_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/LPereira2025/Plano-Emagrecimento/internal/db"
	"github.com/LPereira2025/Plano-Emagrecimento/internal/model"
	"github.com/LPereira2025/Plano-Emagrecimento/internal/store"
)

func newTestStore(t *testing.T) store.Backend {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plano.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = sqldb.Close() })
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return store.NewSQLite(sqldb)
}

func day(value string) model.Date {
	return model.Date(value)
}

func at(date string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" 09:30", time.Local)
	if err != nil {
		panic(err)
	}
	return t
}

func floatPtr(v float64) *float64 {
	return &v
}
