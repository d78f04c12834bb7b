package activitylogs

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
	createActivityLog = store.CreateActivityLog
	listActivityLogs  = store.ListActivityLogs
)

// @Summary     Log volunteer hours
// @Description event_id 未填時以任務所屬活動為準，log_date 為當天
// @Tags        activitylogs
// @Accept      json,application/x-www-form-urlencoded
// @Produce     json
// @Param       body body     api.LogHoursRequest true "時數資料"
// @Success     201  {object} api.LogHoursResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /activitylogs/log-hours [post]
func LogHoursHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LogHoursRequest
		if err := c.Bind(&req); err != nil {
			return handler.BadRequest(c, "invalid request body")
		}
		if err := c.Validate(&req); err != nil || req.HoursLogged <= 0 {
			return handler.BadRequest(c, "Missing required fields")
		}

		log, err := createActivityLog(c.Request().Context(), db, &model.ActivityLog{
			UserID:      req.UserID,
			EventID:     req.EventID,
			TaskID:      req.TaskID,
			HoursLogged: req.HoursLogged,
		})
		if err != nil {
			switch {
			case store.IsNotFound(err):
				return handler.NotFound(c, "Task not found")
			case store.IsForeignKeyViolation(err):
				return handler.BadRequest(c, "User or event not found")
			}
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusCreated, api.LogHoursResponse{
			Message: "Volunteer hours logged successfully",
			Log:     *log,
		})
	}
}

// @Summary     List activity logs
// @Description 依紀錄日期由新到舊
// @Tags        activitylogs
// @Produce     json
// @Param       user_id query    int false "志工 ID"
// @Success     200     {array}  model.ActivityLog
// @Failure     400     {object} api.ErrorResponse
// @Failure     500     {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /activitylogs [get]
func ListActivityLogsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := handler.QueryID(c, "user_id")
		if err != nil {
			return handler.BadRequest(c, "invalid user_id")
		}
		logs, err := listActivityLogs(c.Request().Context(), db, userID)
		if err != nil {
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, logs)
	}
}
