// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notification

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/medora/internal/platform/dberr"
	"github.com/taibuivan/medora/internal/platform/postgres"
)

const (
	queryInsertNotification = `
		INSERT INTO notifications (id, sender_id, receiver_id, message, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	// Senders are admins (users) or employees.
	queryListForReceiver = `
		SELECT n.id, n.sender_id,
		       COALESCE(NULLIF(btrim(u.first_name || ' ' || u.last_name), ''), e.name, ''),
		       n.receiver_id, n.message, n.status, n.created_at, n.updated_at
		FROM notifications n
		LEFT JOIN users u ON u.id = n.sender_id
		LEFT JOIN employees e ON e.id = n.sender_id
		WHERE n.receiver_id = $1
		ORDER BY n.created_at DESC`

	queryMarkRead = `
		UPDATE notifications
		SET status = 'Read', updated_at = now()
		WHERE id = $1 AND receiver_id = $2
		RETURNING id, sender_id, receiver_id, message, status, created_at, updated_at`

	queryCountUnread = `SELECT count(*) FROM notifications WHERE receiver_id = $1 AND status = 'Unread'`
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.Queryer
}

// NewPostgresRepository constructs a PostgreSQL backed notification store.
func NewPostgresRepository(db postgres.Queryer) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) queryer(ctx context.Context) postgres.Queryer {
	return postgres.QueryerFromContext(ctx, repository.db)
}

func (repository *PostgresRepository) Create(ctx context.Context, notification *Notification) error {
	err := repository.queryer(ctx).QueryRow(ctx, queryInsertNotification,
		notification.ID, notification.SenderID, notification.ReceiverID, notification.Message, string(notification.Status),
	).Scan(&notification.CreatedAt, &notification.UpdatedAt)
	return dberr.Wrap(err, "create_notification")
}

func (repository *PostgresRepository) ListForReceiver(ctx context.Context, receiverID string) ([]*View, error) {
	rows, err := repository.queryer(ctx).Query(ctx, queryListForReceiver, receiverID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_notifications")
	}
	defer rows.Close()

	views := make([]*View, 0)
	for rows.Next() {
		var (
			view   View
			status string
		)
		if err := rows.Scan(
			&view.ID, &view.Sender.ID, &view.Sender.Name,
			&view.ReceiverID, &view.Message, &status, &view.CreatedAt, &view.UpdatedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_notification")
		}
		view.Status = Status(status)
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_notifications")
	}
	return views, nil
}

/*
MarkRead updates in a single statement scoped by receiver.

A notification owned by someone else and one that does not exist are
indistinguishable to the caller.
*/
func (repository *PostgresRepository) MarkRead(ctx context.Context, id, receiverID string) (*Notification, error) {
	var (
		notification Notification
		status       string
	)
	err := repository.queryer(ctx).QueryRow(ctx, queryMarkRead, id, receiverID).Scan(
		&notification.ID, &notification.SenderID, &notification.ReceiverID, &notification.Message,
		&status, &notification.CreatedAt, &notification.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, dberr.Wrap(err, "mark_notification_read")
	}
	notification.Status = Status(status)
	return &notification, nil
}

func (repository *PostgresRepository) CountUnread(ctx context.Context, receiverID string) (int, error) {
	var count int
	if err := repository.queryer(ctx).QueryRow(ctx, queryCountUnread, receiverID).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count_unread_notifications")
	}
	return count, nil
}
