package model

import "time"

type Event struct {
	EventID     int       `db:"event_id" json:"event_id"`
	EventName   string    `db:"event_name" json:"event_name"`
	Description string    `db:"description" json:"description"`
	StartDate   Date      `db:"start_date" json:"start_date"`
	EndDate     Date      `db:"end_date" json:"end_date"`
	Location    string    `db:"location" json:"location"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

// ValidStatus 檢查任務 / 指派狀態
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type Task struct {
	TaskID         int       `db:"task_id" json:"task_id"`
	EventID        *int      `db:"event_id" json:"event_id"`
	TaskName       string    `db:"task_name" json:"task_name"`
	Description    string    `db:"description" json:"description"`
	RequiredSkills string    `db:"required_skills" json:"required_skills"`
	Status         string    `db:"status" json:"status"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

type Assignment struct {
	AssignmentID            int        `db:"assignment_id" json:"assignment_id"`
	TaskID                  int        `db:"task_id" json:"task_id"`
	UserID                  int        `db:"user_id" json:"user_id"`
	Status                  string     `db:"status" json:"status"`
	PriorityLevel           int        `db:"priority_level" json:"priority_level"`
	EstimatedCompletionTime *time.Time `db:"estimated_completion_time" json:"estimated_completion_time"`
	AssignedAt              time.Time  `db:"assigned_at" json:"assigned_at"`
	UpdatedAt               time.Time  `db:"updated_at" json:"updated_at"`
}

type ActivityLog struct {
	LogID       int     `db:"log_id" json:"log_id"`
	UserID      int     `db:"user_id" json:"user_id"`
	EventID     *int    `db:"event_id" json:"event_id"`
	TaskID      int     `db:"task_id" json:"task_id"`
	LogDate     Date    `db:"log_date" json:"log_date"`
	HoursLogged float64 `db:"hours_logged" json:"hours_logged"`
}
