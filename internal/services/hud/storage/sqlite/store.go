// Package sqlite provides a SQLite-backed filter storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/actionhud/internal/platform/grpc/pagination"
	sqlitemigrate "github.com/louisbranch/actionhud/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/filter"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/query"
	"github.com/louisbranch/actionhud/internal/services/hud/storage"
	"github.com/louisbranch/actionhud/internal/services/hud/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store persists filter configurations in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite filter store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// LoadFilters returns every stored filter configuration.
func (s *Store) LoadFilters(ctx context.Context) ([]filter.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	page, err := s.list(ctx, query.SQLCondition{}, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("load filters: %w", err)
	}
	return page.Records, nil
}

// SaveFilter inserts or replaces one filter configuration.
func (s *Store) SaveFilter(ctx context.Context, record filter.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	consumerID := strings.TrimSpace(record.ConsumerID)
	categoryID := strings.TrimSpace(record.CategoryID)
	if consumerID == "" {
		return fmt.Errorf("consumer id is required")
	}
	if categoryID == "" {
		return fmt.Errorf("category id is required")
	}
	names := record.Config.Names
	if names == nil {
		names = []string{}
	}
	encoded, err := json.Marshal(names)
	if err != nil {
		return fmt.Errorf("encode filter names: %w", err)
	}
	updatedAt := record.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO filters (consumer_id, category_id, mode, names, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (consumer_id, category_id) DO UPDATE SET
		   mode = excluded.mode,
		   names = excluded.names,
		   updated_at = excluded.updated_at`,
		consumerID,
		categoryID,
		string(record.Config.Mode),
		string(encoded),
		toMillis(updatedAt),
	)
	if err != nil {
		return fmt.Errorf("save filter: %w", err)
	}
	return nil
}

// DeleteFilter removes one filter configuration. Deleting a missing record
// succeeds.
func (s *Store) DeleteFilter(ctx context.Context, consumerID, categoryID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if _, err := s.sqlDB.ExecContext(ctx,
		`DELETE FROM filters WHERE consumer_id = ? AND category_id = ?`,
		strings.TrimSpace(consumerID), strings.TrimSpace(categoryID),
	); err != nil {
		return fmt.Errorf("delete filter: %w", err)
	}
	return nil
}

// ListFilters returns one page of filter records matching an AIP-160
// expression, ordered by consumer then category.
func (s *Store) ListFilters(ctx context.Context, expression string, pageSize int, pageToken string) (storage.FilterPage, error) {
	if err := ctx.Err(); err != nil {
		return storage.FilterPage{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.FilterPage{}, fmt.Errorf("storage is not configured")
	}
	if pageSize <= 0 {
		return storage.FilterPage{}, fmt.Errorf("page size must be greater than zero")
	}
	condition, err := query.ParseFilter(expression)
	if err != nil {
		return storage.FilterPage{}, err
	}
	offset, err := pagination.DecodeOffset(pageToken)
	if err != nil {
		return storage.FilterPage{}, err
	}
	return s.list(ctx, condition, pageSize, offset)
}

// list reads records matching condition. A zero pageSize reads everything.
func (s *Store) list(ctx context.Context, condition query.SQLCondition, pageSize, offset int) (storage.FilterPage, error) {
	statement := `SELECT consumer_id, category_id, mode, names, updated_at FROM filters`
	params := append([]any(nil), condition.Params...)
	if !condition.IsEmpty() {
		statement += " WHERE " + condition.Clause
	}
	statement += " ORDER BY consumer_id ASC, category_id ASC"
	if pageSize > 0 {
		statement += " LIMIT ? OFFSET ?"
		params = append(params, pageSize+1, offset)
	}

	rows, err := s.sqlDB.QueryContext(ctx, statement, params...)
	if err != nil {
		return storage.FilterPage{}, fmt.Errorf("list filters: %w", err)
	}
	defer rows.Close()

	var page storage.FilterPage
	for rows.Next() {
		var (
			record    filter.Record
			mode      string
			names     string
			updatedAt int64
		)
		if err := rows.Scan(&record.ConsumerID, &record.CategoryID, &mode, &names, &updatedAt); err != nil {
			return storage.FilterPage{}, fmt.Errorf("list filters: %w", err)
		}
		if err := json.Unmarshal([]byte(names), &record.Config.Names); err != nil {
			return storage.FilterPage{}, fmt.Errorf("decode filter names %s/%s: %w", record.ConsumerID, record.CategoryID, err)
		}
		record.Config.Mode = filter.Mode(mode)
		record.UpdatedAt = fromMillis(updatedAt)
		page.Records = append(page.Records, record)
	}
	if err := rows.Err(); err != nil {
		return storage.FilterPage{}, fmt.Errorf("list filters: %w", err)
	}
	if pageSize > 0 && len(page.Records) > pageSize {
		page.Records = page.Records[:pageSize]
		page.NextPageToken = pagination.EncodeOffset(offset + pageSize)
	}
	return page, nil
}

var _ storage.FilterStore = (*Store)(nil)
