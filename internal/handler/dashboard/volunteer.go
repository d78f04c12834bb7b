package dashboard

import (
	"net/http"

	"volunteer-hub/internal/database"
	"volunteer-hub/internal/handler"
	"volunteer-hub/internal/store"

	"github.com/labstack/echo/v4"
)

// upcomingLimit 最多列出的活動數
const upcomingLimit = 5

var (
	assignedTasks     = store.AssignedTasks
	upcomingEvents    = store.UpcomingEvents
	getTaskStatistics = store.GetTaskStatistics
)

// @Summary     Assigned tasks
// @Description 尚未完成的指派，依優先度排序
// @Tags        dashboard
// @Produce     json
// @Param       userId path     int true "志工 ID"
// @Success     200    {array}  model.AssignedTask
// @Failure     400    {object} api.ErrorResponse
// @Failure     403    {object} api.ErrorResponse
// @Failure     500    {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /dashboard/{userId}/assigned-tasks [get]
func AssignedTasksHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := handler.ParamID(c, "userId")
		if err != nil {
			return handler.BadRequest(c, "invalid userId")
		}
		tasks, err := assignedTasks(c.Request().Context(), db, userID)
		if err != nil {
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, tasks)
	}
}

// @Summary     Upcoming events
// @Description 今天起的活動與該志工尚未被指派的任務
// @Tags        dashboard
// @Produce     json
// @Param       userId path     int true "志工 ID"
// @Success     200    {array}  model.UpcomingEvent
// @Failure     400    {object} api.ErrorResponse
// @Failure     403    {object} api.ErrorResponse
// @Failure     500    {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /dashboard/{userId}/upcoming-events [get]
func UpcomingEventsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := handler.ParamID(c, "userId")
		if err != nil {
			return handler.BadRequest(c, "invalid userId")
		}
		events, err := upcomingEvents(c.Request().Context(), db, userID, upcomingLimit)
		if err != nil {
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, events)
	}
}

// @Summary     Task statistics
// @Tags        dashboard
// @Produce     json
// @Param       userId path     int true "志工 ID"
// @Success     200    {object} model.TaskStatistics
// @Failure     400    {object} api.ErrorResponse
// @Failure     403    {object} api.ErrorResponse
// @Failure     500    {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /dashboard/{userId}/task-statistics [get]
func TaskStatisticsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := handler.ParamID(c, "userId")
		if err != nil {
			return handler.BadRequest(c, "invalid userId")
		}
		stats, err := getTaskStatistics(c.Request().Context(), db, userID)
		if err != nil {
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, stats)
	}
}
