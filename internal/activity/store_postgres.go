// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package activity

import (
	"context"

	"github.com/taibuivan/medora/internal/platform/dberr"
	"github.com/taibuivan/medora/internal/platform/postgres"
	"github.com/taibuivan/medora/internal/platform/sec"
)

const (
	queryInsertActivity = `
		INSERT INTO activity_logs (id, principal_id, role, action, details, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	// COUNT(*) OVER() returns the total alongside the page in one round-trip.
	queryListActivity = `
		SELECT a.id, a.principal_id,
		       COALESCE(NULLIF(btrim(u.first_name || ' ' || u.last_name), ''), e.name, ''),
		       COALESCE(u.email, e.email, ''),
		       a.role, a.action, a.details, a.status, a.created_at,
		       COUNT(*) OVER() AS total_count
		FROM activity_logs a
		LEFT JOIN users u ON u.id = a.principal_id
		LEFT JOIN employees e ON e.id = a.principal_id
		ORDER BY a.created_at DESC
		LIMIT $1 OFFSET $2`
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.Queryer
}

// NewPostgresRepository constructs a PostgreSQL backed activity store.
func NewPostgresRepository(db postgres.Queryer) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Insert(ctx context.Context, id string, entry Entry) error {
	details := entry.Details
	if len(details) == 0 {
		details = emptyDetails
	}
	_, err := postgres.QueryerFromContext(ctx, repository.db).Exec(ctx, queryInsertActivity,
		id, entry.PrincipalID, string(entry.Role), entry.Action, []byte(details), entry.Status, entry.CreatedAt,
	)
	return dberr.Wrap(err, "insert_activity")
}

func (repository *PostgresRepository) List(ctx context.Context, limit, offset int) ([]*View, int, error) {
	rows, err := postgres.QueryerFromContext(ctx, repository.db).Query(ctx, queryListActivity, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_activity")
	}
	defer rows.Close()

	var (
		views = make([]*View, 0, limit)
		total int
	)
	for rows.Next() {
		var (
			view    View
			role    string
			details []byte
		)
		if err := rows.Scan(
			&view.ID, &view.Principal.ID, &view.Principal.Name, &view.Principal.Email,
			&role, &view.Action, &details, &view.Status, &view.CreatedAt, &total,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_activity")
		}
		view.Principal.Role = sec.Role(role)
		view.Details = details
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_activity")
	}
	return views, total, nil
}
