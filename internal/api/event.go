package api

// swagger:model api.EventRequest
type EventRequest struct {
	EventName   string `json:"event_name" form:"event_name" validate:"required" example:"Beach Cleanup"`
	Description string `json:"description" form:"description" example:"Annual cleanup"`
	StartDate   string `json:"start_date" form:"start_date" validate:"required" example:"2025-06-01"`
	EndDate     string `json:"end_date" form:"end_date" validate:"required" example:"2025-06-02"`
	Location    string `json:"location" form:"location" example:"Marina Beach"`
}

// swagger:model api.TaskRequest
type TaskRequest struct {
	EventID        *int   `json:"event_id" form:"event_id" example:"1"`
	TaskName       string `json:"task_name" form:"task_name" validate:"required" example:"Registration desk"`
	Description    string `json:"description" form:"description"`
	RequiredSkills string `json:"required_skills" form:"required_skills" example:"communication, typing"`
	Status         string `json:"status" form:"status" example:"Pending"`
}

// swagger:model api.StatusRequest
type StatusRequest struct {
	Status string `json:"status" form:"status" validate:"required" example:"Completed"`
}
