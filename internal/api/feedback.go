package api

import "volunteer-hub/internal/model"

// swagger:model api.CreateFeedbackRequest
type CreateFeedbackRequest struct {
	AssignmentID int    `json:"assignment_id" form:"assignment_id" validate:"required" example:"1"`
	UserID       int    `json:"user_id" form:"user_id" validate:"required" example:"2"`
	Rating       int    `json:"rating" form:"rating" validate:"required" example:"5"`
	Comment      string `json:"comment" form:"comment" validate:"required" example:"Great work"`
}

// swagger:model api.UpdateFeedbackRequest
type UpdateFeedbackRequest struct {
	Rating  int    `json:"rating" form:"rating" validate:"required" example:"4"`
	Comment string `json:"comment" form:"comment" validate:"required" example:"Good"`
}

// swagger:model api.DeleteFeedbackResponse
type DeleteFeedbackResponse struct {
	Message         string         `json:"message" example:"Feedback deleted"`
	DeletedFeedback model.Feedback `json:"deletedFeedback"`
}
