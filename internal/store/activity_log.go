package store

import (
	"context"
	"fmt"

	"volunteer-hub/internal/database"
	"volunteer-hub/internal/model"

	"github.com/jackc/pgx/v5"
)

const activityLogColumns = `log_id, user_id, event_id, task_id, log_date, hours_logged::float8`

func scanActivityLog(row pgx.Row) (*model.ActivityLog, error) {
	l := &model.ActivityLog{}
	if err := row.Scan(&l.LogID, &l.UserID, &l.EventID, &l.TaskID, &l.LogDate.Time, &l.HoursLogged); err != nil {
		return nil, err
	}
	return l, nil
}

// CreateActivityLog 以今天日期記錄時數；EventID 為 nil 時沿用任務所屬的活動
func CreateActivityLog(ctx context.Context, db database.Querier, l *model.ActivityLog) (*model.ActivityLog, error) {
	created, err := scanActivityLog(db.QueryRow(ctx,
		`INSERT INTO activity_logs (user_id, event_id, task_id, log_date, hours_logged)
		 SELECT $1, COALESCE($2::int, t.event_id), t.task_id, CURRENT_DATE, $4
		 FROM tasks t
		 WHERE t.task_id = $3
		 RETURNING `+activityLogColumns,
		l.UserID,
		l.EventID,
		l.TaskID,
		l.HoursLogged,
	))
	if err != nil {
		return nil, fmt.Errorf("CreateActivityLog: %w", err)
	}
	return created, nil
}

func ListActivityLogs(ctx context.Context, db database.Querier, userID *int) ([]model.ActivityLog, error) {
	rows, err := db.Query(ctx,
		`SELECT `+activityLogColumns+` FROM activity_logs
		 WHERE ($1::int IS NULL OR user_id = $1)
		 ORDER BY log_date DESC, log_id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListActivityLogs: %w", err)
	}
	defer rows.Close()

	out := []model.ActivityLog{}
	for rows.Next() {
		l, err := scanActivityLog(rows)
		if err != nil {
			return nil, fmt.Errorf("ListActivityLogs: %w", err)
		}
		out = append(out, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListActivityLogs: %w", err)
	}
	return out, nil
}
