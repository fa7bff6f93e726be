package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/vncsmyrnk/pollbot/internal/core/ports"
)

type resultArchiveRepository struct {
	db *sql.DB
}

func NewResultArchiveRepository(db *sql.DB) ports.ResultArchive {
	return &resultArchiveRepository{
		db: db,
	}
}

func (r *resultArchiveRepository) Save(ctx context.Context, archived *ports.ArchivedPoll) error {
	results, err := json.Marshal(archived.Results)
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}

	query := `
		INSERT INTO poll_archives (id, poll_id, title, closed_at, results)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = r.db.ExecContext(ctx, query, archived.ID, archived.PollID, archived.Title, archived.ClosedAt, results)
	if err != nil {
		return fmt.Errorf("failed to insert archive: %w", err)
	}
	return nil
}

func (r *resultArchiveRepository) List(ctx context.Context, limit int) ([]*ports.ArchivedPoll, error) {
	query := `
		SELECT id, poll_id, title, closed_at, results
		FROM poll_archives
		ORDER BY closed_at DESC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list archives: %w", err)
	}
	defer rows.Close()

	var archives []*ports.ArchivedPoll
	for rows.Next() {
		var (
			a   ports.ArchivedPoll
			raw []byte
		)
		if err := rows.Scan(&a.ID, &a.PollID, &a.Title, &a.ClosedAt, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan archive: %w", err)
		}
		if err := json.Unmarshal(raw, &a.Results); err != nil {
			return nil, fmt.Errorf("failed to decode results of archive %s: %w", a.ID, err)
		}
		archives = append(archives, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating archives: %w", err)
	}
	return archives, nil
}
