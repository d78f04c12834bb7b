package events

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
	createEvent = store.CreateEvent
	listEvents  = store.ListEvents
	getEvent    = store.GetEvent
	updateEvent = store.UpdateEvent
	deleteEvent = store.DeleteEvent
)

// bindEvent 綁定並驗證活動資料，失敗時已寫出 400 回應
func bindEvent(c echo.Context) (*model.Event, bool, error) {
	var req api.EventRequest
	if err := c.Bind(&req); err != nil {
		return nil, false, handler.BadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return nil, false, handler.BadRequest(c, "Please fill in all required fields.")
	}
	start, err := model.ParseDate(req.StartDate)
	if err != nil {
		return nil, false, handler.BadRequest(c, "Invalid date format. Use YYYY-MM-DD.")
	}
	end, err := model.ParseDate(req.EndDate)
	if err != nil {
		return nil, false, handler.BadRequest(c, "Invalid date format. Use YYYY-MM-DD.")
	}
	if end.Before(start.Time) {
		return nil, false, handler.BadRequest(c, "End date cannot be before start date.")
	}
	return &model.Event{
		EventName:   req.EventName,
		Description: req.Description,
		StartDate:   start,
		EndDate:     end,
		Location:    req.Location,
	}, true, nil
}

// @Summary     Create an event
// @Tags        events
// @Accept      json,application/x-www-form-urlencoded
// @Produce     json
// @Param       body body     api.EventRequest true "活動資料"
// @Success     201  {object} model.Event
// @Failure     400  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /events [post]
func CreateEventHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		ev, ok, err := bindEvent(c)
		if !ok {
			return err
		}
		created, err := createEvent(c.Request().Context(), db, ev)
		if err != nil {
			if store.IsCheckViolation(err) {
				return handler.BadRequest(c, "End date cannot be before start date.")
			}
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusCreated, created)
	}
}

// @Summary     List events
// @Description 依開始日期排序
// @Tags        events
// @Produce     json
// @Success     200 {array}  model.Event
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /events [get]
func ListEventsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		events, err := listEvents(c.Request().Context(), db)
		if err != nil {
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, events)
	}
}

// @Summary     Get an event
// @Tags        events
// @Produce     json
// @Param       id  path     int true "活動 ID"
// @Success     200 {object} model.Event
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /events/{id} [get]
func GetEventHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c, "id")
		if err != nil {
			return handler.BadRequest(c, "invalid event ID")
		}
		ev, err := getEvent(c.Request().Context(), db, id)
		if err != nil {
			if store.IsNotFound(err) {
				return handler.NotFound(c, "Event not found")
			}
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, ev)
	}
}

// @Summary     Update an event
// @Tags        events
// @Accept      json,application/x-www-form-urlencoded
// @Produce     json
// @Param       id   path     int              true "活動 ID"
// @Param       body body     api.EventRequest true "活動資料"
// @Success     200  {object} model.Event
// @Failure     400  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /events/{id} [put]
func UpdateEventHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c, "id")
		if err != nil {
			return handler.BadRequest(c, "invalid event ID")
		}
		ev, ok, err := bindEvent(c)
		if !ok {
			return err
		}
		ev.EventID = id
		updated, err := updateEvent(c.Request().Context(), db, ev)
		if err != nil {
			if store.IsNotFound(err) {
				return handler.NotFound(c, "Event not found")
			}
			if store.IsCheckViolation(err) {
				return handler.BadRequest(c, "End date cannot be before start date.")
			}
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, updated)
	}
}

// @Summary     Delete an event
// @Description 連同其任務一併刪除；不存在的活動同樣回傳 204
// @Tags        events
// @Param       id  path int true "活動 ID"
// @Success     204 "No Content"
// @Failure     400 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /events/{id} [delete]
func DeleteEventHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c, "id")
		if err != nil {
			return handler.BadRequest(c, "invalid event ID")
		}
		if err := deleteEvent(c.Request().Context(), db, id); err != nil {
			return handler.InternalError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
