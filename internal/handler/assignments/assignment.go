package assignments

import (
	"net/http"

	"volunteer-hub/internal/api"
	"volunteer-hub/internal/database"
	"volunteer-hub/internal/handler"
	"volunteer-hub/internal/model"
	"volunteer-hub/internal/service"
	"volunteer-hub/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	assignTask             = service.AssignTask
	changeAssignmentStatus = service.ChangeAssignmentStatus
	listAssignments        = store.ListAssignments
	getAssignment          = store.GetAssignment
	deleteAssignment       = store.DeleteAssignment
)

// @Summary     Assign a task
// @Description 建立指派並通知該志工
// @Tags        assignments
// @Accept      json,application/x-www-form-urlencoded
// @Produce     json
// @Param       body body     api.CreateAssignmentRequest true "指派資料"
// @Success     201  {object} model.Assignment
// @Failure     400  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /assignments [post]
func CreateAssignmentHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateAssignmentRequest
		if err := c.Bind(&req); err != nil {
			return handler.BadRequest(c, "invalid request body")
		}
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, "Task ID and User ID are required")
		}

		created, err := assignTask(c.Request().Context(), db, &model.Assignment{
			TaskID:                  req.TaskID,
			UserID:                  req.UserID,
			Status:                  model.StatusPending,
			PriorityLevel:           req.PriorityLevel,
			EstimatedCompletionTime: req.EstimatedCompletionTime,
		})
		if err != nil {
			if store.IsForeignKeyViolation(err) {
				return handler.BadRequest(c, "Task or user not found")
			}
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusCreated, created)
	}
}

// @Summary     List assignments
// @Tags        assignments
// @Produce     json
// @Param       user_id query    int false "志工 ID"
// @Success     200     {array}  model.Assignment
// @Failure     400     {object} api.ErrorResponse
// @Failure     500     {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /assignments [get]
func ListAssignmentsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := handler.QueryID(c, "user_id")
		if err != nil {
			return handler.BadRequest(c, "invalid user_id")
		}
		list, err := listAssignments(c.Request().Context(), db, userID)
		if err != nil {
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, list)
	}
}

// @Summary     Get an assignment
// @Tags        assignments
// @Produce     json
// @Param       id  path     int true "指派 ID"
// @Success     200 {object} model.Assignment
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /assignments/{id} [get]
func GetAssignmentHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c, "id")
		if err != nil {
			return handler.BadRequest(c, "invalid assignment ID")
		}
		a, err := getAssignment(c.Request().Context(), db, id)
		if err != nil {
			if store.IsNotFound(err) {
				return handler.NotFound(c, "Assignment not found")
			}
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, a)
	}
}

// @Summary     Update assignment status
// @Description 狀態改為 Completed 時通知志工
// @Tags        assignments
// @Accept      json,application/x-www-form-urlencoded
// @Produce     json
// @Param       id   path     int               true "指派 ID"
// @Param       body body     api.StatusRequest true "新狀態"
// @Success     200  {object} model.Assignment
// @Failure     400  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /assignments/{id} [put]
func UpdateAssignmentStatusHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c, "id")
		if err != nil {
			return handler.BadRequest(c, "invalid assignment ID")
		}
		var req api.StatusRequest
		if err := c.Bind(&req); err != nil {
			return handler.BadRequest(c, "invalid request body")
		}
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, "Status is required")
		}
		if !model.ValidStatus(req.Status) {
			return handler.BadRequest(c, "Invalid status value")
		}

		updated, err := changeAssignmentStatus(c.Request().Context(), db, id, req.Status)
		if err != nil {
			if store.IsNotFound(err) {
				return handler.NotFound(c, "Assignment not found")
			}
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, updated)
	}
}

// @Summary     Delete an assignment
// @Tags        assignments
// @Produce     json
// @Param       id  path     int true "指派 ID"
// @Success     200 {object} api.DeleteAssignmentResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /assignments/{id} [delete]
func DeleteAssignmentHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c, "id")
		if err != nil {
			return handler.BadRequest(c, "invalid assignment ID")
		}
		deleted, err := deleteAssignment(c.Request().Context(), db, id)
		if err != nil {
			if store.IsNotFound(err) {
				return handler.NotFound(c, "Assignment not found")
			}
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, api.DeleteAssignmentResponse{
			Message:           "Assignment deleted",
			DeletedAssignment: *deleted,
		})
	}
}
