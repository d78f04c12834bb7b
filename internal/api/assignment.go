package api

import (
	"time"

	"volunteer-hub/internal/model"
)

// swagger:model api.CreateAssignmentRequest
type CreateAssignmentRequest struct {
	TaskID                  int        `json:"task_id" form:"task_id" validate:"required" example:"1"`
	UserID                  int        `json:"user_id" form:"user_id" validate:"required" example:"2"`
	PriorityLevel           int        `json:"priority_level" form:"priority_level" validate:"gte=0" example:"1"`
	EstimatedCompletionTime *time.Time `json:"estimated_completion_time" form:"estimated_completion_time"`
}

// swagger:model api.DeleteAssignmentResponse
type DeleteAssignmentResponse struct {
	Message           string           `json:"message" example:"Assignment deleted"`
	DeletedAssignment model.Assignment `json:"deletedAssignment"`
}

// swagger:model api.LogHoursRequest
type LogHoursRequest struct {
	UserID      int     `json:"user_id" form:"user_id" validate:"required" example:"2"`
	EventID     *int    `json:"event_id" form:"event_id" example:"1"`
	TaskID      int     `json:"task_id" form:"task_id" validate:"required" example:"3"`
	HoursLogged float64 `json:"hours_logged" form:"hours_logged" validate:"required,gt=0" example:"2.5"`
}

// swagger:model api.LogHoursResponse
type LogHoursResponse struct {
	Message string            `json:"message" example:"Volunteer hours logged successfully"`
	Log     model.ActivityLog `json:"log"`
}
