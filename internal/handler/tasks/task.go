package tasks

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
	createTask = store.CreateTask
	listTasks  = store.ListTasks
	getTask    = store.GetTask
	updateTask = store.UpdateTask
	deleteTask = store.DeleteTask
)

func bindTask(c echo.Context) (*model.Task, bool, error) {
	var req api.TaskRequest
	if err := c.Bind(&req); err != nil {
		return nil, false, handler.BadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return nil, false, handler.BadRequest(c, "Task name is required")
	}
	if req.Status != "" && !model.ValidStatus(req.Status) {
		return nil, false, handler.BadRequest(c, "Invalid status value")
	}
	return &model.Task{
		EventID:        req.EventID,
		TaskName:       req.TaskName,
		Description:    req.Description,
		RequiredSkills: req.RequiredSkills,
		Status:         req.Status,
	}, true, nil
}

// @Summary     Create a task
// @Description status 未填時為 Pending
// @Tags        tasks
// @Accept      json,application/x-www-form-urlencoded
// @Produce     json
// @Param       body body     api.TaskRequest true "任務資料"
// @Success     201  {object} model.Task
// @Failure     400  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /tasks [post]
func CreateTaskHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		task, ok, err := bindTask(c)
		if !ok {
			return err
		}
		if task.Status == "" {
			task.Status = model.StatusPending
		}
		created, err := createTask(c.Request().Context(), db, task)
		if err != nil {
			if store.IsForeignKeyViolation(err) {
				return handler.BadRequest(c, "Event not found")
			}
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusCreated, created)
	}
}

// @Summary     List tasks
// @Tags        tasks
// @Produce     json
// @Param       event_id query    int false "活動 ID"
// @Success     200      {array}  model.Task
// @Failure     400      {object} api.ErrorResponse
// @Failure     500      {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /tasks [get]
func ListTasksHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		eventID, err := handler.QueryID(c, "event_id")
		if err != nil {
			return handler.BadRequest(c, "invalid event_id")
		}
		tasks, err := listTasks(c.Request().Context(), db, eventID)
		if err != nil {
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, tasks)
	}
}

// @Summary     Get a task
// @Tags        tasks
// @Produce     json
// @Param       id  path     int true "任務 ID"
// @Success     200 {object} model.Task
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /tasks/{id} [get]
func GetTaskHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c, "id")
		if err != nil {
			return handler.BadRequest(c, "invalid task ID")
		}
		task, err := getTask(c.Request().Context(), db, id)
		if err != nil {
			if store.IsNotFound(err) {
				return handler.NotFound(c, "Task not found")
			}
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, task)
	}
}

// @Summary     Update a task
// @Description status 未填時保留原狀態
// @Tags        tasks
// @Accept      json,application/x-www-form-urlencoded
// @Produce     json
// @Param       id   path     int             true "任務 ID"
// @Param       body body     api.TaskRequest true "任務資料"
// @Success     200  {object} model.Task
// @Failure     400  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /tasks/{id} [put]
func UpdateTaskHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c, "id")
		if err != nil {
			return handler.BadRequest(c, "invalid task ID")
		}
		task, ok, err := bindTask(c)
		if !ok {
			return err
		}
		task.TaskID = id
		updated, err := updateTask(c.Request().Context(), db, task)
		if err != nil {
			switch {
			case store.IsNotFound(err):
				return handler.NotFound(c, "Task not found")
			case store.IsForeignKeyViolation(err):
				return handler.BadRequest(c, "Event not found")
			}
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, updated)
	}
}

// @Summary     Delete a task
// @Description 不存在的任務同樣回傳 204
// @Tags        tasks
// @Param       id  path int true "任務 ID"
// @Success     204 "No Content"
// @Failure     400 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /tasks/{id} [delete]
func DeleteTaskHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c, "id")
		if err != nil {
			return handler.BadRequest(c, "invalid task ID")
		}
		if err := deleteTask(c.Request().Context(), db, id); err != nil {
			return handler.InternalError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
