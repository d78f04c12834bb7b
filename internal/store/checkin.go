package store

import (
	"context"
	"fmt"

	"volunteer-hub/internal/database"
	"volunteer-hub/internal/model"

	"github.com/jackc/pgx/v5"
)

const checkInColumns = `checkin_id, user_id, checkin_time, checkout_time`

func scanCheckIn(row pgx.Row) (*model.CheckIn, error) {
	c := &model.CheckIn{}
	if err := row.Scan(&c.CheckinID, &c.UserID, &c.CheckinTime, &c.CheckoutTime); err != nil {
		return nil, err
	}
	return c, nil
}

func collectCheckIns(rows pgx.Rows) ([]model.CheckIn, error) {
	defer rows.Close()
	out := []model.CheckIn{}
	for rows.Next() {
		c, err := scanCheckIn(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// CreateCheckIn 登入時開啟一筆出勤紀錄
func CreateCheckIn(ctx context.Context, db database.Querier, userID int) (*model.CheckIn, error) {
	c, err := scanCheckIn(db.QueryRow(ctx,
		`INSERT INTO volunteer_checkins (user_id, checkin_time)
		 VALUES ($1, now())
		 RETURNING `+checkInColumns,
		userID,
	))
	if err != nil {
		return nil, fmt.Errorf("CreateCheckIn: %w", err)
	}
	return c, nil
}

// CloseOpenCheckIns 關閉使用者所有未登出的紀錄並回傳最新的一筆。
// 沒有開啟中的紀錄時回傳 pgx.ErrNoRows。
func CloseOpenCheckIns(ctx context.Context, db database.Querier, userID int) (*model.CheckIn, error) {
	c, err := scanCheckIn(db.QueryRow(ctx,
		`WITH closed AS (
		     UPDATE volunteer_checkins
		     SET checkout_time = now()
		     WHERE user_id = $1 AND checkout_time IS NULL
		     RETURNING `+checkInColumns+`
		 )
		 SELECT `+checkInColumns+` FROM closed
		 ORDER BY checkin_time DESC
		 LIMIT 1`,
		userID,
	))
	if err != nil {
		return nil, fmt.Errorf("CloseOpenCheckIns: %w", err)
	}
	return c, nil
}

// ListCheckIns 列出出勤紀錄，userID 為 nil 時列出全部
func ListCheckIns(ctx context.Context, db database.Querier, userID *int) ([]model.CheckIn, error) {
	rows, err := db.Query(ctx,
		`SELECT `+checkInColumns+` FROM volunteer_checkins
		 WHERE ($1::int IS NULL OR user_id = $1)
		 ORDER BY checkin_time DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListCheckIns: %w", err)
	}
	out, err := collectCheckIns(rows)
	if err != nil {
		return nil, fmt.Errorf("ListCheckIns: %w", err)
	}
	return out, nil
}

// ListVolunteerCheckIns 只列出非管理員的出勤紀錄
func ListVolunteerCheckIns(ctx context.Context, db database.Querier) ([]model.CheckIn, error) {
	rows, err := db.Query(ctx,
		`SELECT vc.checkin_id, vc.user_id, vc.checkin_time, vc.checkout_time
		 FROM volunteer_checkins vc
		 JOIN users u ON vc.user_id = u.user_id
		 WHERE u.role <> 'Admin'
		 ORDER BY vc.checkin_time DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListVolunteerCheckIns: %w", err)
	}
	out, err := collectCheckIns(rows)
	if err != nil {
		return nil, fmt.Errorf("ListVolunteerCheckIns: %w", err)
	}
	return out, nil
}

// CheckInHours 依已登出的紀錄加總每位使用者的時數
func CheckInHours(ctx context.Context, db database.Querier, userID *int) ([]model.UserHours, error) {
	rows, err := db.Query(ctx,
		`SELECT user_id,
		        SUM(EXTRACT(EPOCH FROM (checkout_time - checkin_time)) / 3600)::float8 AS total_hours
		 FROM volunteer_checkins
		 WHERE checkout_time IS NOT NULL
		   AND ($1::int IS NULL OR user_id = $1)
		 GROUP BY user_id
		 ORDER BY user_id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("CheckInHours: %w", err)
	}
	defer rows.Close()

	out := []model.UserHours{}
	for rows.Next() {
		var h model.UserHours
		if err := rows.Scan(&h.UserID, &h.TotalHours); err != nil {
			return nil, fmt.Errorf("CheckInHours: %w", err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("CheckInHours: %w", err)
	}
	return out, nil
}
