package model

import "time"

// 管理員儀表板

type DashboardStats struct {
	TotalVolunteers int     `json:"totalVolunteers"`
	TotalTasks      int     `json:"totalTasks"`
	UpcomingEvents  int     `json:"upcomingEvents"`
	VolunteerHours  float64 `json:"volunteerHours"`
}

type TaskCompletion struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

type VolunteerHours struct {
	Name  string  `json:"name"`
	Hours float64 `json:"hours"`
}

type ActivityItem struct {
	ID       int     `json:"id"`
	Activity string  `json:"activity"`
	Date     Date    `json:"date"`
	Hours    float64 `json:"hours"`
}

type DashboardNotification struct {
	ID      int       `json:"id"`
	Message string    `json:"message"`
	SentAt  time.Time `json:"sent_at"`
	Type    string    `json:"type"`
}

// 志工個人儀表板

type AssignedTask struct {
	ID           int      `json:"id"`
	AssignmentID int      `json:"assignmentId"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Skills       []string `json:"skills"`
	Status       string   `json:"status"`
}

type EventTask struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type UpcomingEvent struct {
	ID             int         `json:"id"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Date           Date        `json:"date"`
	Location       string      `json:"location"`
	AvailableTasks []EventTask `json:"availableTasks"`
}

type TaskStatistics struct {
	TotalTasks       int     `json:"totalTasks"`
	CompletedTasks   int     `json:"completedTasks"`
	TotalHoursLogged float64 `json:"totalHoursLogged"`
}

// VolunteerSummary 志工列表，附上其指派所收到回饋的平均分數
type VolunteerSummary struct {
	UserID       int     `json:"user_id"`
	Username     string  `json:"username"`
	Year         string  `json:"year"`
	Department   string  `json:"department"`
	Skills       string  `json:"skills"`
	Availability string  `json:"availability"`
	AvgRating    float64 `json:"avg_rating"`
}
