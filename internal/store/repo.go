package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/models"
)

// Sort is a recognized result ordering for List.
type Sort string

// Sort orders. SortNewest is the default.
const (
	SortNewest       Sort = "newest"
	SortOldest       Sort = "oldest"
	SortAlphabetical Sort = "alphabetical"
)

// ParseSort maps a raw sortBy value onto a Sort, falling back to SortNewest
// for empty or unrecognized input.
func ParseSort(s string) Sort {
	switch Sort(s) {
	case SortOldest, SortAlphabetical:
		return Sort(s)
	default:
		return SortNewest
	}
}

// Filter is the query contract for List. Search matches case-insensitively
// as a substring of title, description, or any tag; Category is an exact
// match combined with Search by AND. An unrecognized Category matches
// nothing; it is not an error.
type Filter struct {
	Search   string
	Category string
	Sort     Sort
}

// Insert persists a new record as one durable write.
func (db *DB) Insert(ctx context.Context, rec *models.Record) error {
	tagsJSON, err := json.Marshal(rec.Tags)
	if err != nil {
		return fmt.Errorf("store: marshal tags: %w", err)
	}
	_, err = db.conn.ExecContext(ctx, `
		INSERT INTO records (id, title, description, external_url, category, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Title, rec.Description, rec.ExternalURL, string(rec.Category), string(tagsJSON), rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("store: insert record: %w", err)
	}
	return nil
}

// Update overwrites every mutable field of the record with the given id.
// created_at is never touched. Returns apperr.ErrNotFound when no row has
// that id.
func (db *DB) Update(ctx context.Context, rec *models.Record) error {
	tagsJSON, err := json.Marshal(rec.Tags)
	if err != nil {
		return fmt.Errorf("store: marshal tags: %w", err)
	}
	res, err := db.conn.ExecContext(ctx, `
		UPDATE records
		SET title = ?, description = ?, external_url = ?, category = ?, tags = ?, updated_at = ?
		WHERE id = ?
	`, rec.Title, rec.Description, rec.ExternalURL, string(rec.Category), string(tagsJSON), rec.UpdatedAt, rec.ID)
	if err != nil {
		return fmt.Errorf("store: update record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: rows affected: %w", err)
	}
	if n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// Delete removes the record with the given id. Returns apperr.ErrNotFound
// when no row has that id.
func (db *DB) Delete(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: rows affected: %w", err)
	}
	if n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// Get returns the record with the given id, or apperr.ErrNotFound.
func (db *DB) Get(ctx context.Context, id string) (*models.Record, error) {
	row := db.conn.QueryRowContext(ctx, `
		SELECT id, title, description, external_url, category, tags, created_at, updated_at
		FROM records
		WHERE id = ?
	`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get record: %w", err)
	}
	return rec, nil
}

// List translates the filter into a SQL query and returns the full ordered
// result set. The search term matches via LIKE against title, description,
// and the serialized tags column; SQLite's default LIKE is case-insensitive
// for ASCII, which is the contract here.
func (db *DB) List(ctx context.Context, f Filter) ([]models.Record, error) {
	var conds []string
	var args []any

	if f.Search != "" {
		like := "%" + f.Search + "%"
		conds = append(conds, `(title LIKE ? OR description LIKE ? OR tags LIKE ?)`)
		args = append(args, like, like, like)
	}
	if f.Category != "" {
		conds = append(conds, `category = ?`)
		args = append(args, f.Category)
	}

	q := `SELECT id, title, description, external_url, category, tags, created_at, updated_at FROM records`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY " + orderClause(f.Sort)

	rows, err := db.conn.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("store: list records: %w", err)
	}
	defer rows.Close()

	out := []models.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan record: %w", err)
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

// Count returns the total number of stored records.
func (db *DB) Count(ctx context.Context) (int, error) {
	var n int
	if err := db.conn.QueryRowContext(ctx, `SELECT count(*) FROM records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("store: count records: %w", err)
	}
	return n, nil
}

// orderClause maps a Sort onto an ORDER BY body. The id tiebreak keeps
// equal-keyed rows in a stable order across queries. Alphabetical uses the
// table's native BINARY collation, so it is case-sensitive.
func orderClause(s Sort) string {
	switch s {
	case SortOldest:
		return "created_at ASC, id ASC"
	case SortAlphabetical:
		return "title ASC, id ASC"
	default:
		return "created_at DESC, id ASC"
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*models.Record, error) {
	var rec models.Record
	var category, tagsJSON string
	var createdAt, updatedAt time.Time
	err := row.Scan(&rec.ID, &rec.Title, &rec.Description, &rec.ExternalURL, &category, &tagsJSON, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	rec.Category = models.Category(category)
	rec.CreatedAt = createdAt
	rec.UpdatedAt = updatedAt
	if err := json.Unmarshal([]byte(tagsJSON), &rec.Tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	if rec.Tags == nil {
		rec.Tags = []string{}
	}
	return &rec, nil
}
