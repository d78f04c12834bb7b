package api

import "volunteer-hub/internal/model"

// swagger:model api.CreateNotificationRequest
type CreateNotificationRequest struct {
	UserID  int    `json:"user_id" form:"user_id" validate:"required" example:"2"`
	Message string `json:"message" form:"message" validate:"required" example:"Event starts at 9am"`
	Status  string `json:"status" form:"status" validate:"omitempty,oneof=Sent Read" example:"Sent"`
}

// swagger:model api.NotificationResponse
type NotificationResponse struct {
	Message      string             `json:"message" example:"Notification sent successfully"`
	Notification model.Notification `json:"notification"`
}

// swagger:model api.MarkNotificationsRequest
type MarkNotificationsRequest struct {
	NotificationIDs []int `json:"notification_ids" form:"notification_ids" validate:"required,min=1"`
}

// swagger:model api.MarkNotificationsResponse
type MarkNotificationsResponse struct {
	Message      string `json:"message" example:"Notifications marked as read"`
	UpdatedCount int64  `json:"updated_count" example:"3"`
}
