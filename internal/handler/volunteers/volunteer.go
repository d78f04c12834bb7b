package volunteers

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
	listVolunteerSummaries = store.ListVolunteerSummaries
	updateTaskStatus       = store.UpdateTaskStatus
)

// @Summary     List volunteers
// @Description 所有志工與其收到回饋的平均評分
// @Tags        volunteer
// @Produce     json
// @Success     200 {array}  model.VolunteerSummary
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /volunteer/volunteers [get]
func ListVolunteersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := listVolunteerSummaries(c.Request().Context(), db)
		if err != nil {
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, list)
	}
}

// @Summary     Update task status
// @Tags        volunteer
// @Accept      json
// @Produce     json
// @Param       taskId path     int               true "任務 ID"
// @Param       body   body     api.StatusRequest true "新狀態"
// @Success     200    {object} model.Task
// @Failure     400    {object} api.ErrorResponse
// @Failure     404    {object} api.ErrorResponse
// @Failure     500    {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /volunteer/tasks/{taskId} [put]
func UpdateTaskStatusHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		taskID, err := handler.ParamID(c, "taskId")
		if err != nil {
			return handler.BadRequest(c, "invalid task ID")
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

		task, err := updateTaskStatus(c.Request().Context(), db, taskID, req.Status)
		if err != nil {
			if store.IsNotFound(err) {
				return handler.NotFound(c, "Task not found")
			}
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, task)
	}
}
