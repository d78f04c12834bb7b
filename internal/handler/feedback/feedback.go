package feedback

import (
	"net/http"

	"volunteer-hub/internal/api"
	"volunteer-hub/internal/database"
	"volunteer-hub/internal/handler"
	"volunteer-hub/internal/model"
	"volunteer-hub/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	createFeedback           = store.CreateFeedback
	listFeedback             = store.ListFeedback
	listFeedbackByUser       = store.ListFeedbackByUser
	listFeedbackByAssignment = store.ListFeedbackByAssignment
	updateFeedback           = store.UpdateFeedback
	deleteFeedback           = store.DeleteFeedback
)

func validRating(r int) bool { return r >= 1 && r <= 5 }

// @Summary     Create feedback
// @Tags        feedback
// @Accept      json,application/x-www-form-urlencoded
// @Produce     json
// @Param       body body     api.CreateFeedbackRequest true "回饋內容"
// @Success     201  {object} model.Feedback
// @Failure     400  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /feedback [post]
func CreateFeedbackHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateFeedbackRequest
		if err := c.Bind(&req); err != nil {
			return handler.BadRequest(c, "invalid request body")
		}
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, "All fields are required")
		}
		if !validRating(req.Rating) {
			return handler.BadRequest(c, "Rating must be between 1 and 5")
		}

		created, err := createFeedback(c.Request().Context(), db, &model.Feedback{
			AssignmentID: req.AssignmentID,
			UserID:       req.UserID,
			Rating:       req.Rating,
			Comment:      req.Comment,
		})
		if err != nil {
			if store.IsForeignKeyViolation(err) {
				return handler.BadRequest(c, "Assignment or user not found")
			}
			if store.IsCheckViolation(err) {
				return handler.BadRequest(c, "Rating must be between 1 and 5")
			}
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusCreated, created)
	}
}

// @Summary     List feedback
// @Description 依建立時間由新到舊
// @Tags        feedback
// @Produce     json
// @Success     200 {array}  model.Feedback
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /feedback [get]
func ListFeedbackHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := listFeedback(c.Request().Context(), db)
		if err != nil {
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, list)
	}
}

// @Summary     Feedback by volunteer
// @Tags        feedback
// @Produce     json
// @Param       user_id path     int true "志工 ID"
// @Success     200     {array}  model.Feedback
// @Failure     400     {object} api.ErrorResponse
// @Failure     404     {object} api.ErrorResponse
// @Failure     500     {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /feedback/volunteer/{user_id} [get]
func ListFeedbackByVolunteerHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c, "user_id")
		if err != nil {
			return handler.BadRequest(c, "invalid user ID")
		}
		list, err := listFeedbackByUser(c.Request().Context(), db, id)
		if err != nil {
			return handler.InternalError(c, err)
		}
		if len(list) == 0 {
			return handler.NotFound(c, "No feedback found for this volunteer")
		}
		return c.JSON(http.StatusOK, list)
	}
}

// @Summary     Feedback by assignment
// @Tags        feedback
// @Produce     json
// @Param       assignment_id path     int true "指派 ID"
// @Success     200           {array}  model.Feedback
// @Failure     400           {object} api.ErrorResponse
// @Failure     404           {object} api.ErrorResponse
// @Failure     500           {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /feedback/assignment/{assignment_id} [get]
func ListFeedbackByAssignmentHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c, "assignment_id")
		if err != nil {
			return handler.BadRequest(c, "invalid assignment ID")
		}
		list, err := listFeedbackByAssignment(c.Request().Context(), db, id)
		if err != nil {
			return handler.InternalError(c, err)
		}
		if len(list) == 0 {
			return handler.NotFound(c, "No feedback found for this assignment")
		}
		return c.JSON(http.StatusOK, list)
	}
}

// @Summary     Update feedback
// @Tags        feedback
// @Accept      json,application/x-www-form-urlencoded
// @Produce     json
// @Param       feedback_id path     int                       true "回饋 ID"
// @Param       body        body     api.UpdateFeedbackRequest true "評分與留言"
// @Success     200         {object} model.Feedback
// @Failure     400         {object} api.ErrorResponse
// @Failure     404         {object} api.ErrorResponse
// @Failure     500         {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /feedback/{feedback_id} [put]
func UpdateFeedbackHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c, "feedback_id")
		if err != nil {
			return handler.BadRequest(c, "invalid feedback ID")
		}
		var req api.UpdateFeedbackRequest
		if err := c.Bind(&req); err != nil {
			return handler.BadRequest(c, "invalid request body")
		}
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, "Rating and comment are required")
		}
		if !validRating(req.Rating) {
			return handler.BadRequest(c, "Rating must be between 1 and 5")
		}

		updated, err := updateFeedback(c.Request().Context(), db, id, req.Rating, req.Comment)
		if err != nil {
			if store.IsNotFound(err) {
				return handler.NotFound(c, "Feedback not found")
			}
			if store.IsCheckViolation(err) {
				return handler.BadRequest(c, "Rating must be between 1 and 5")
			}
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, updated)
	}
}

// @Summary     Delete feedback
// @Tags        feedback
// @Produce     json
// @Param       feedback_id path     int true "回饋 ID"
// @Success     200         {object} api.DeleteFeedbackResponse
// @Failure     400         {object} api.ErrorResponse
// @Failure     404         {object} api.ErrorResponse
// @Failure     500         {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /feedback/{feedback_id} [delete]
func DeleteFeedbackHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c, "feedback_id")
		if err != nil {
			return handler.BadRequest(c, "invalid feedback ID")
		}
		deleted, err := deleteFeedback(c.Request().Context(), db, id)
		if err != nil {
			if store.IsNotFound(err) {
				return handler.NotFound(c, "Feedback not found")
			}
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, api.DeleteFeedbackResponse{
			Message:         "Feedback deleted",
			DeletedFeedback: *deleted,
		})
	}
}
