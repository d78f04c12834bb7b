package store

import (
	"context"
	"fmt"

	"volunteer-hub/internal/database"
	"volunteer-hub/internal/model"

	"github.com/jackc/pgx/v5"
)

const notificationColumns = `notification_id, user_id, message, status, sent_at`

func scanNotification(row pgx.Row) (*model.Notification, error) {
	n := &model.Notification{}
	if err := row.Scan(&n.NotificationID, &n.UserID, &n.Message, &n.Status, &n.SentAt); err != nil {
		return nil, err
	}
	return n, nil
}

func CreateNotification(ctx context.Context, db database.Querier, userID int, message, status string) (*model.Notification, error) {
	if status == "" {
		status = model.NotificationSent
	}
	n, err := scanNotification(db.QueryRow(ctx,
		`INSERT INTO notifications (user_id, message, status)
		 VALUES ($1, $2, $3)
		 RETURNING `+notificationColumns,
		userID,
		message,
		status,
	))
	if err != nil {
		return nil, fmt.Errorf("CreateNotification: %w", err)
	}
	return n, nil
}

func ListNotificationsByUser(ctx context.Context, db database.Querier, userID int) ([]model.Notification, error) {
	rows, err := db.Query(ctx,
		`SELECT `+notificationColumns+` FROM notifications
		 WHERE user_id = $1
		 ORDER BY sent_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListNotificationsByUser: %w", err)
	}
	defer rows.Close()

	out := []model.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("ListNotificationsByUser: %w", err)
		}
		out = append(out, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListNotificationsByUser: %w", err)
	}
	return out, nil
}

func GetNotification(ctx context.Context, db database.Querier, notificationID int) (*model.Notification, error) {
	n, err := scanNotification(db.QueryRow(ctx,
		`SELECT `+notificationColumns+` FROM notifications WHERE notification_id = $1`,
		notificationID,
	))
	if err != nil {
		return nil, fmt.Errorf("GetNotification: %w", err)
	}
	return n, nil
}

func MarkNotificationRead(ctx context.Context, db database.Querier, notificationID int) (*model.Notification, error) {
	n, err := scanNotification(db.QueryRow(ctx,
		`UPDATE notifications SET status = 'Read'
		 WHERE notification_id = $1
		 RETURNING `+notificationColumns,
		notificationID,
	))
	if err != nil {
		return nil, fmt.Errorf("MarkNotificationRead: %w", err)
	}
	return n, nil
}

// MarkNotificationsRead 批次標記已讀並回傳更新筆數；userID 不為 nil 時只更新該使用者的通知
func MarkNotificationsRead(ctx context.Context, db database.Querier, ids []int, userID *int) (int64, error) {
	tag, err := db.Exec(ctx,
		`UPDATE notifications SET status = 'Read'
		 WHERE notification_id = ANY($1)
		   AND ($2::int IS NULL OR user_id = $2)`,
		ids,
		userID,
	)
	if err != nil {
		return 0, fmt.Errorf("MarkNotificationsRead: %w", err)
	}
	return tag.RowsAffected(), nil
}
