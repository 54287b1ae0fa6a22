package assetcache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/LPereira2025/Plano-Emagrecimento/internal/logging"
)

const installedAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

var _ Storage = (*SQLiteStorage)(nil)

// SQLiteStorage keeps versions in asset_versions and their responses in
// asset_entries; deleting a version cascades to its entries.
type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(db *sql.DB) *SQLiteStorage {
	return &SQLiteStorage{db: db}
}

func (s *SQLiteStorage) Commit(ctx context.Context, version string, installedAt time.Time, entries map[string]Response) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin asset commit: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM asset_versions WHERE version = ?`, version); err != nil {
		return fmt.Errorf("replace asset version %q: %w", version, err)
	}
	if _, err = tx.ExecContext(ctx, `INSERT INTO asset_versions(version, installed_at) VALUES(?, ?)`,
		version, installedAt.UTC().Format(installedAtLayout)); err != nil {
		return fmt.Errorf("insert asset version %q: %w", version, err)
	}
	for resource, resp := range entries {
		headerJSON, mErr := json.Marshal(resp.Header)
		if mErr != nil {
			err = fmt.Errorf("marshal headers for %s: %w", resource, mErr)
			return err
		}
		body := resp.Body
		if body == nil {
			body = []byte{}
		}
		if _, err = tx.ExecContext(ctx, `
INSERT INTO asset_entries(version, resource, status, content_type, header_json, body)
VALUES(?, ?, ?, ?, ?, ?)
`, version, resource, resp.Status, resp.ContentType, string(headerJSON), body); err != nil {
			return fmt.Errorf("insert asset %s: %w", resource, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit asset version %q: %w", version, err)
	}
	logging.Log.Debugf("committed asset version %s with %d entries", version, len(entries))
	return nil
}

func (s *SQLiteStorage) Versions(ctx context.Context) ([]VersionInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT v.version, v.installed_at, COUNT(e.resource)
FROM asset_versions v
LEFT JOIN asset_entries e ON e.version = v.version
GROUP BY v.version, v.installed_at
ORDER BY v.installed_at DESC, v.rowid DESC
`)
	if err != nil {
		return nil, fmt.Errorf("list asset versions: %w", err)
	}
	defer rows.Close()

	out := make([]VersionInfo, 0)
	for rows.Next() {
		var info VersionInfo
		var installedAt string
		if err := rows.Scan(&info.Version, &installedAt, &info.Entries); err != nil {
			return nil, fmt.Errorf("scan asset version: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, installedAt); err == nil {
			info.InstalledAt = t
		}
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate asset versions: %w", err)
	}
	return out, nil
}

func (s *SQLiteStorage) DeleteVersion(ctx context.Context, version string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM asset_versions WHERE version = ?`, version); err != nil {
		return fmt.Errorf("delete asset version %q: %w", version, err)
	}
	return nil
}

func (s *SQLiteStorage) Lookup(ctx context.Context, version, resource string) (Response, bool, error) {
	var resp Response
	var headerJSON string
	err := s.db.QueryRowContext(ctx, `
SELECT status, content_type, header_json, body
FROM asset_entries
WHERE version = ? AND resource = ?
`, version, resource).Scan(&resp.Status, &resp.ContentType, &headerJSON, &resp.Body)
	if err == sql.ErrNoRows {
		return Response{}, false, nil
	}
	if err != nil {
		return Response{}, false, fmt.Errorf("lookup asset %s: %w", resource, err)
	}
	if headerJSON != "" {
		var h http.Header
		if err := json.Unmarshal([]byte(headerJSON), &h); err != nil {
			logging.Log.WithError(err).Warnf("ignoring malformed stored headers for %s", resource)
		} else {
			resp.Header = h
		}
	}
	return resp, true, nil
}
