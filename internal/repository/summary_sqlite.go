package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tutorflow/backend/internal/model"
)

type sqliteSummaryStore struct {
	db *sql.DB
}

// NewSQLiteSummaryStore returns the default SummaryStore backed by the
// summary_cache and summary_last_depth tables.
func NewSQLiteSummaryStore(db *sql.DB) SummaryStore {
	return &sqliteSummaryStore{db: db}
}

func (s *sqliteSummaryStore) Get(ctx context.Context, userID string, scope model.Scope, depth int) (*model.SummaryEntry, error) {
	query := `
		SELECT payload, generated_at FROM summary_cache
		WHERE user_id = ? AND scope_kind = ? AND scope_id = ? AND depth = ?
	`
	var payload string
	var generatedAt time.Time
	err := s.db.QueryRowContext(ctx, query, userID, string(scope.Kind), scope.ID, depth).Scan(&payload, &generatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("could not read summary %s depth %d: %w", scope, depth, err)
	}

	var entry model.SummaryEntry
	if err := json.Unmarshal([]byte(payload), &entry); err != nil {
		return nil, fmt.Errorf("corrupt summary payload for %s depth %d: %w", scope, depth, err)
	}
	entry.GeneratedAt = generatedAt
	return &entry, nil
}

// Put upserts the entry and moves the last-depth marker in one transaction.
func (s *sqliteSummaryStore) Put(ctx context.Context, userID string, scope model.Scope, depth int, entry *model.SummaryEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("could not encode summary: %w", err)
	}
	generatedAt := entry.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	upsertEntry := `
		INSERT INTO summary_cache (user_id, scope_kind, scope_id, depth, payload, generated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, scope_kind, scope_id, depth)
		DO UPDATE SET payload = excluded.payload, generated_at = excluded.generated_at
	`
	if _, err = tx.ExecContext(ctx, upsertEntry, userID, string(scope.Kind), scope.ID, depth, string(payload), generatedAt); err != nil {
		return fmt.Errorf("could not upsert summary: %w", err)
	}

	upsertLastDepth := `
		INSERT INTO summary_last_depth (user_id, scope_kind, scope_id, depth, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, scope_kind, scope_id)
		DO UPDATE SET depth = excluded.depth, updated_at = excluded.updated_at
	`
	if _, err = tx.ExecContext(ctx, upsertLastDepth, userID, string(scope.Kind), scope.ID, depth, time.Now().UTC()); err != nil {
		return fmt.Errorf("could not record last depth: %w", err)
	}

	return tx.Commit()
}

func (s *sqliteSummaryStore) LastDepth(ctx context.Context, userID string, scope model.Scope) (int, bool, error) {
	query := "SELECT depth FROM summary_last_depth WHERE user_id = ? AND scope_kind = ? AND scope_id = ?"
	var depth int
	if err := s.db.QueryRowContext(ctx, query, userID, string(scope.Kind), scope.ID).Scan(&depth); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("could not read last depth for %s: %w", scope, err)
	}
	return depth, true, nil
}
