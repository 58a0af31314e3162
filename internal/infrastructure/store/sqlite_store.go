// Package store persists classified service records. The primary backend is
// a SQLite database; when the database cannot be opened the package degrades
// to a JSON file store with the same contract.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/ecoscan/internal/domain"
	"github.com/doeshing/ecoscan/internal/ports"
)

// SQLiteStore persists service records in a SQLite database, one row per
// package id.
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewSQLiteStore creates (or opens) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// modernc.org/sqlite serializes writes per connection; a single
	// connection avoids SQLITE_BUSY on concurrent access.
	db.SetMaxOpenConns(1)
	store := &SQLiteStore{db: db, path: path}
	if err := store.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS services (
		package_id TEXT PRIMARY KEY,
		id TEXT NOT NULL,
		name TEXT NOT NULL,
		impact_level TEXT NOT NULL,
		source TEXT NOT NULL DEFAULT '',
		category TEXT,
		usage TEXT,
		content TEXT,
		cached_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_services_impact ON services(impact_level);`)
	return err
}

// ReplaceAll clears the previous result set and inserts the given records in
// one transaction. Nothing survives from earlier scans.
func (s *SQLiteStore) ReplaceAll(ctx context.Context, services []domain.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, "DELETE FROM services"); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO services
		(package_id, id, name, impact_level, source, category, usage, content, cached_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, svc := range services {
		category, err := marshalNullable(svc.Category)
		if err != nil {
			return err
		}
		usage, err := marshalNullable(svc.Usage)
		if err != nil {
			return err
		}
		content, err := marshalNullable(svc.Content)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx,
			svc.PackageID,
			svc.ID,
			svc.Name,
			string(svc.Level),
			string(svc.Source),
			category,
			usage,
			content,
			svc.CachedAt.UTC().Format(domain.TimestampFormat),
			svc.UpdatedAt.UTC().Format(domain.TimestampFormat),
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

const selectColumns = "package_id, id, name, impact_level, source, category, usage, content, cached_at, updated_at"

// All returns every stored record sorted by display name.
func (s *SQLiteStore) All(ctx context.Context) ([]domain.Service, error) {
	return s.query(ctx, "SELECT "+selectColumns+" FROM services ORDER BY name COLLATE NOCASE ASC")
}

// ByPackage looks up a single record by package id.
func (s *SQLiteStore) ByPackage(ctx context.Context, packageID string) (domain.Service, bool, error) {
	services, err := s.query(ctx,
		"SELECT "+selectColumns+" FROM services WHERE package_id = ?", packageID)
	if err != nil {
		return domain.Service{}, false, err
	}
	if len(services) == 0 {
		return domain.Service{}, false, nil
	}
	return services[0], true, nil
}

// Search returns records whose name or package id contains the query,
// case-insensitive.
func (s *SQLiteStore) Search(ctx context.Context, query string) ([]domain.Service, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	return s.query(ctx,
		`SELECT `+selectColumns+` FROM services
		WHERE lower(name) LIKE ? OR lower(package_id) LIKE ?
		ORDER BY name COLLATE NOCASE ASC`, pattern, pattern)
}

// ByImpact returns records carrying the given impact level.
func (s *SQLiteStore) ByImpact(ctx context.Context, level domain.ImpactLevel) ([]domain.Service, error) {
	return s.query(ctx,
		"SELECT "+selectColumns+" FROM services WHERE impact_level = ? ORDER BY name COLLATE NOCASE ASC",
		string(level))
}

// Cleanup removes records not updated inside the retention window and
// returns how many were deleted.
func (s *SQLiteStore) Cleanup(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-olderThan).UTC().Format(domain.TimestampFormat)
	res, err := s.db.ExecContext(ctx, "DELETE FROM services WHERE updated_at < ?", cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) query(ctx context.Context, stmt string, args ...interface{}) ([]domain.Service, error) {
	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var services []domain.Service
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, svc)
	}
	return services, rows.Err()
}

func scanService(rows *sql.Rows) (domain.Service, error) {
	var (
		svc                   domain.Service
		level, source         string
		category, usage, body sql.NullString
		cachedAt, updatedAt   string
	)
	if err := rows.Scan(&svc.PackageID, &svc.ID, &svc.Name, &level, &source,
		&category, &usage, &body, &cachedAt, &updatedAt); err != nil {
		return domain.Service{}, err
	}
	svc.Level = domain.ImpactLevel(level)
	svc.Source = domain.ClassificationSource(source)
	if err := unmarshalNullable(category, &svc.Category); err != nil {
		return domain.Service{}, err
	}
	if err := unmarshalNullable(usage, &svc.Usage); err != nil {
		return domain.Service{}, err
	}
	if err := unmarshalNullable(body, &svc.Content); err != nil {
		return domain.Service{}, err
	}
	if t, err := time.Parse(domain.TimestampFormat, cachedAt); err == nil {
		svc.CachedAt = t
	}
	if t, err := time.Parse(domain.TimestampFormat, updatedAt); err == nil {
		svc.UpdatedAt = t
	}
	return svc, nil
}

func marshalNullable[T any](value *T) (sql.NullString, error) {
	if value == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func unmarshalNullable[T any](column sql.NullString, target **T) error {
	if !column.Valid || column.String == "" {
		return nil
	}
	value := new(T)
	if err := json.Unmarshal([]byte(column.String), value); err != nil {
		return err
	}
	*target = value
	return nil
}

var _ ports.ServiceRepository = (*SQLiteStore)(nil)
