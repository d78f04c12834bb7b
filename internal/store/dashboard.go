package store

import (
	"context"
	"fmt"
	"strings"

	"volunteer-hub/internal/database"
	"volunteer-hub/internal/model"
)

func GetDashboardStats(ctx context.Context, db database.Querier) (*model.DashboardStats, error) {
	s := &model.DashboardStats{}
	err := db.QueryRow(ctx,
		`SELECT
		     (SELECT COUNT(*) FROM users WHERE role = 'Volunteer'),
		     (SELECT COUNT(*) FROM tasks),
		     (SELECT COUNT(*) FROM events WHERE start_date > CURRENT_DATE),
		     (SELECT COALESCE(SUM(hours_logged), 0)::float8 FROM activity_logs)`,
	).Scan(&s.TotalVolunteers, &s.TotalTasks, &s.UpcomingEvents, &s.VolunteerHours)
	if err != nil {
		return nil, fmt.Errorf("GetDashboardStats: %w", err)
	}
	return s, nil
}

func GetTaskCompletion(ctx context.Context, db database.Querier) (*model.TaskCompletion, error) {
	tc := &model.TaskCompletion{}
	err := db.QueryRow(ctx,
		`SELECT COUNT(*) FILTER (WHERE status = 'Completed'), COUNT(*) FROM tasks`,
	).Scan(&tc.Completed, &tc.Total)
	if err != nil {
		return nil, fmt.Errorf("GetTaskCompletion: %w", err)
	}
	return tc, nil
}

// TopVolunteers 依累計時數排序的前 limit 名志工
func TopVolunteers(ctx context.Context, db database.Querier, limit int) ([]model.VolunteerHours, error) {
	rows, err := db.Query(ctx,
		`SELECT u.username, SUM(a.hours_logged)::float8 AS hours
		 FROM users u
		 JOIN activity_logs a ON u.user_id = a.user_id
		 WHERE u.role = 'Volunteer'
		 GROUP BY u.user_id, u.username
		 ORDER BY hours DESC, u.username
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("TopVolunteers: %w", err)
	}
	defer rows.Close()

	out := []model.VolunteerHours{}
	for rows.Next() {
		var v model.VolunteerHours
		if err := rows.Scan(&v.Name, &v.Hours); err != nil {
			return nil, fmt.Errorf("TopVolunteers: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("TopVolunteers: %w", err)
	}
	return out, nil
}

// TopVolunteerOfMonth 本月時數最多的志工；本月沒有紀錄時回傳 pgx.ErrNoRows
func TopVolunteerOfMonth(ctx context.Context, db database.Querier) (*model.VolunteerHours, error) {
	v := &model.VolunteerHours{}
	err := db.QueryRow(ctx,
		`SELECT u.username, SUM(a.hours_logged)::float8 AS hours
		 FROM users u
		 JOIN activity_logs a ON u.user_id = a.user_id
		 WHERE u.role = 'Volunteer'
		   AND a.log_date >= date_trunc('month', CURRENT_DATE)
		   AND a.log_date < date_trunc('month', CURRENT_DATE) + interval '1 month'
		 GROUP BY u.user_id, u.username
		 ORDER BY hours DESC, u.username
		 LIMIT 1`,
	).Scan(&v.Name, &v.Hours)
	if err != nil {
		return nil, fmt.Errorf("TopVolunteerOfMonth: %w", err)
	}
	return v, nil
}

// RecentActivity 最近的時數紀錄，格式化為儀表板顯示的文字
func RecentActivity(ctx context.Context, db database.Querier, limit int) ([]model.ActivityItem, error) {
	rows, err := db.Query(ctx,
		`SELECT al.log_id, u.username, t.task_name, COALESCE(e.event_name, ''),
		        al.log_date, al.hours_logged::float8
		 FROM activity_logs al
		 JOIN users u ON al.user_id = u.user_id
		 JOIN tasks t ON al.task_id = t.task_id
		 LEFT JOIN events e ON al.event_id = e.event_id
		 ORDER BY al.log_date DESC, al.log_id DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("RecentActivity: %w", err)
	}
	defer rows.Close()

	out := []model.ActivityItem{}
	for rows.Next() {
		var (
			item                        model.ActivityItem
			username, taskName, evtName string
		)
		if err := rows.Scan(&item.ID, &username, &taskName, &evtName, &item.Date.Time, &item.Hours); err != nil {
			return nil, fmt.Errorf("RecentActivity: %w", err)
		}
		item.Activity = fmt.Sprintf("%s completed task: %s for %s", username, taskName, evtName)
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("RecentActivity: %w", err)
	}
	return out, nil
}

// RecentNotifications 最近的通知，依內容關鍵字分類
func RecentNotifications(ctx context.Context, db database.Querier, limit int) ([]model.DashboardNotification, error) {
	rows, err := db.Query(ctx,
		`SELECT notification_id, message, sent_at
		 FROM notifications
		 ORDER BY sent_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("RecentNotifications: %w", err)
	}
	defer rows.Close()

	out := []model.DashboardNotification{}
	for rows.Next() {
		var n model.DashboardNotification
		if err := rows.Scan(&n.ID, &n.Message, &n.SentAt); err != nil {
			return nil, fmt.Errorf("RecentNotifications: %w", err)
		}
		n.Type = NotificationType(n.Message)
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("RecentNotifications: %w", err)
	}
	return out, nil
}

// NotificationType 依訊息內容判斷顯示類型，比對大小寫有別
func NotificationType(message string) string {
	switch {
	case strings.Contains(message, "registration"):
		return "info"
	case strings.Contains(message, "overdue"):
		return "warning"
	case strings.Contains(message, "upcoming"):
		return "alert"
	default:
		return "info"
	}
}

// AssignedTasks 志工尚未完成的指派，依優先度由高至低
func AssignedTasks(ctx context.Context, db database.Querier, userID int) ([]model.AssignedTask, error) {
	rows, err := db.Query(ctx,
		`SELECT t.task_id, a.assignment_id, t.description, t.required_skills, a.status
		 FROM tasks t
		 JOIN assignments a ON t.task_id = a.task_id
		 WHERE a.user_id = $1 AND a.status <> 'Completed'
		 ORDER BY a.priority_level DESC, a.assignment_id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("AssignedTasks: %w", err)
	}
	defer rows.Close()

	out := []model.AssignedTask{}
	for rows.Next() {
		var (
			t      model.AssignedTask
			skills string
		)
		if err := rows.Scan(&t.ID, &t.AssignmentID, &t.Description, &skills, &t.Status); err != nil {
			return nil, fmt.Errorf("AssignedTasks: %w", err)
		}
		t.Title = fmt.Sprintf("Task %d", len(out)+1)
		t.Skills = SplitSkills(skills)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("AssignedTasks: %w", err)
	}
	return out, nil
}

// SplitSkills 拆解逗號分隔的技能字串，去除空白與空項目
func SplitSkills(s string) []string {
	skills := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			skills = append(skills, p)
		}
	}
	return skills
}

// UpcomingEvents 最近 limit 個尚未開始的活動，附上該志工尚未被指派的任務
func UpcomingEvents(ctx context.Context, db database.Querier, userID, limit int) ([]model.UpcomingEvent, error) {
	rows, err := db.Query(ctx,
		`WITH upcoming AS (
		     SELECT event_id, event_name, description, start_date, location
		     FROM events
		     WHERE start_date >= CURRENT_DATE
		     ORDER BY start_date, event_id
		     LIMIT $2
		 )
		 SELECT e.event_id, e.event_name, e.description, e.start_date, e.location,
		        t.task_id, t.task_name
		 FROM upcoming e
		 LEFT JOIN tasks t
		        ON t.event_id = e.event_id
		       AND NOT EXISTS (
		           SELECT 1 FROM assignments a
		           WHERE a.task_id = t.task_id AND a.user_id = $1)
		 ORDER BY e.start_date, e.event_id, t.task_id`,
		userID,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("UpcomingEvents: %w", err)
	}
	defer rows.Close()

	out := []model.UpcomingEvent{}
	index := map[int]int{}
	for rows.Next() {
		var (
			ev       model.UpcomingEvent
			taskID   *int
			taskName *string
		)
		if err := rows.Scan(&ev.ID, &ev.Title, &ev.Description, &ev.Date.Time, &ev.Location, &taskID, &taskName); err != nil {
			return nil, fmt.Errorf("UpcomingEvents: %w", err)
		}
		i, ok := index[ev.ID]
		if !ok {
			ev.AvailableTasks = []model.EventTask{}
			out = append(out, ev)
			i = len(out) - 1
			index[ev.ID] = i
		}
		if taskID != nil {
			name := ""
			if taskName != nil {
				name = *taskName
			}
			out[i].AvailableTasks = append(out[i].AvailableTasks, model.EventTask{ID: *taskID, Name: name})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("UpcomingEvents: %w", err)
	}
	return out, nil
}

func GetTaskStatistics(ctx context.Context, db database.Querier, userID int) (*model.TaskStatistics, error) {
	s := &model.TaskStatistics{}
	err := db.QueryRow(ctx,
		`SELECT
		     (SELECT COUNT(*) FROM assignments WHERE user_id = $1),
		     (SELECT COUNT(*) FROM assignments WHERE user_id = $1 AND status = 'Completed'),
		     (SELECT COALESCE(SUM(hours_logged), 0)::float8 FROM activity_logs WHERE user_id = $1)`,
		userID,
	).Scan(&s.TotalTasks, &s.CompletedTasks, &s.TotalHoursLogged)
	if err != nil {
		return nil, fmt.Errorf("GetTaskStatistics: %w", err)
	}
	return s, nil
}
