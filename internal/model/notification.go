package model

import (
	"fmt"
	"time"
)

const (
	NotificationSent = "Sent"
	NotificationRead = "Read"
)

type Notification struct {
	NotificationID int       `db:"notification_id" json:"notification_id"`
	UserID         int       `db:"user_id" json:"user_id"`
	Message        string    `db:"message" json:"message"`
	Status         string    `db:"status" json:"status"`
	SentAt         time.Time `db:"sent_at" json:"sent_at"`
}

// AssignedMessage 建立指派時寄給志工的通知內容
func AssignedMessage(taskID int) string {
	return fmt.Sprintf("You have been assigned a new task: Task ID %d", taskID)
}

// CompletedMessage 指派完成時的通知內容
func CompletedMessage(taskID int) string {
	return fmt.Sprintf("Task ID %d has been completed.", taskID)
}

type Feedback struct {
	FeedbackID   int       `db:"feedback_id" json:"feedback_id"`
	AssignmentID int       `db:"assignment_id" json:"assignment_id"`
	UserID       int       `db:"user_id" json:"user_id"`
	Rating       int       `db:"rating" json:"rating"`
	Comment      string    `db:"comment" json:"comment"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
