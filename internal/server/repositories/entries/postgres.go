// Package entries provides PostgreSQL-backed storage for journal entries.
package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/photojournal/internal/common"
	"github.com/dmitrijs2005/photojournal/internal/dbx"
	"github.com/dmitrijs2005/photojournal/internal/server/models"
)

// PostgresRepository implements entry storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListByUser returns all entries of userID ordered by entry id. A user with
// no entries gets an empty, non-nil slice.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Entry, error) {
	query := `
		SELECT entry_id, user_id, title, notes, photo_url
		FROM entries
		WHERE user_id = $1
		ORDER BY entry_id
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Entry, 0)
	for rows.Next() {
		e := &models.Entry{}
		if err := rows.Scan(&e.ID, &e.UserID, &e.Title, &e.Notes, &e.PhotoURL); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return result, nil
}

// GetByID returns the entry only when it belongs to userID.
func (r *PostgresRepository) GetByID(ctx context.Context, userID, entryID int64) (*models.Entry, error) {
	query := `
		SELECT entry_id, user_id, title, notes, photo_url
		FROM entries
		WHERE entry_id = $1 AND user_id = $2
	`
	e := &models.Entry{}
	err := r.db.QueryRowContext(ctx, query, entryID, userID).
		Scan(&e.ID, &e.UserID, &e.Title, &e.Notes, &e.PhotoURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

// Create inserts entry and returns it with the generated id.
func (r *PostgresRepository) Create(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
	query := `
		INSERT INTO entries (user_id, title, notes, photo_url)
		VALUES ($1, $2, $3, $4)
		RETURNING entry_id
	`
	created := *entry
	err := r.db.QueryRowContext(ctx, query, entry.UserID, entry.Title, entry.Notes, entry.PhotoURL).
		Scan(&created.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &created, nil
}

// Update replaces title, notes and photo URL of an entry owned by
// entry.UserID. A missing or foreign entry yields common.ErrorNotFound.
func (r *PostgresRepository) Update(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
	query := `
		UPDATE entries
		SET title = $1, notes = $2, photo_url = $3
		WHERE entry_id = $4 AND user_id = $5
		RETURNING entry_id, user_id, title, notes, photo_url
	`
	e := &models.Entry{}
	err := r.db.QueryRowContext(ctx, query,
		entry.Title, entry.Notes, entry.PhotoURL, entry.ID, entry.UserID).
		Scan(&e.ID, &e.UserID, &e.Title, &e.Notes, &e.PhotoURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

// Delete removes an entry owned by userID. Deleting a missing or foreign
// entry yields common.ErrorNotFound.
func (r *PostgresRepository) Delete(ctx context.Context, userID, entryID int64) error {
	query := `DELETE FROM entries WHERE entry_id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, entryID, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
