package notifications

import (
	"net/http"

	"volunteer-hub/internal/api"
	"volunteer-hub/internal/database"
	"volunteer-hub/internal/handler"
	"volunteer-hub/internal/mailer"
	"volunteer-hub/internal/middleware"
	"volunteer-hub/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	getUserByID             = store.GetUserByID
	createNotification      = store.CreateNotification
	listNotificationsByUser = store.ListNotificationsByUser
	getNotification         = store.GetNotification
	markNotificationRead    = store.MarkNotificationRead
	markNotificationsRead   = store.MarkNotificationsRead
)

// @Summary     Send a notification
// @Description 新增通知並以 e-mail 通知該使用者，寄信失敗不影響回應
// @Tags        notifications
// @Accept      json,application/x-www-form-urlencoded
// @Produce     json
// @Param       body body     api.CreateNotificationRequest true "通知內容"
// @Success     201  {object} api.NotificationResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /notifications [post]
func SendNotificationHandler(db database.DB, notifier mailer.Notifier) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateNotificationRequest
		if err := c.Bind(&req); err != nil {
			return handler.BadRequest(c, "invalid request body")
		}
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, "User ID and message are required")
		}

		ctx := c.Request().Context()
		user, err := getUserByID(ctx, db, req.UserID)
		if err != nil {
			if store.IsNotFound(err) {
				return handler.NotFound(c, "User not found")
			}
			return handler.InternalError(c, err)
		}

		n, err := createNotification(ctx, db, user.UserID, req.Message, req.Status)
		if err != nil {
			return handler.InternalError(c, err)
		}

		if notifier != nil {
			notifier.Notify(mailer.NotificationMessage(user.Email, req.Message))
		}

		return c.JSON(http.StatusCreated, api.NotificationResponse{
			Message:      "Notification sent successfully",
			Notification: *n,
		})
	}
}

// @Summary     List a user's notifications
// @Description 依寄送時間由新到舊
// @Tags        notifications
// @Produce     json
// @Param       user_id path     int true "使用者 ID"
// @Success     200     {array}  model.Notification
// @Failure     400     {object} api.ErrorResponse
// @Failure     403     {object} api.ErrorResponse
// @Failure     500     {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /notifications/user/{user_id} [get]
func ListUserNotificationsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := handler.ParamID(c, "user_id")
		if err != nil {
			return handler.BadRequest(c, "invalid user ID")
		}
		list, err := listNotificationsByUser(c.Request().Context(), db, userID)
		if err != nil {
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, list)
	}
}

// @Summary     Mark a notification as read
// @Description 志工只能標記自己的通知
// @Tags        notifications
// @Produce     json
// @Param       id  path     int true "通知 ID"
// @Success     200 {object} api.NotificationResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /notifications/{id} [put]
func MarkNotificationReadHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c, "id")
		if err != nil {
			return handler.BadRequest(c, "invalid notification ID")
		}
		ctx := c.Request().Context()

		claims, ok := middleware.Claims(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}
		if !claims.IsAdmin() {
			existing, err := getNotification(ctx, db, id)
			if err != nil {
				if store.IsNotFound(err) {
					return handler.NotFound(c, "Notification not found")
				}
				return handler.InternalError(c, err)
			}
			// 他人的通知視同不存在
			if existing.UserID != claims.UserID {
				return handler.NotFound(c, "Notification not found")
			}
		}

		n, err := markNotificationRead(ctx, db, id)
		if err != nil {
			if store.IsNotFound(err) {
				return handler.NotFound(c, "Notification not found")
			}
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, api.NotificationResponse{
			Message:      "Notification marked as read",
			Notification: *n,
		})
	}
}

// @Summary     Mark notifications as read
// @Description 批次標記；志工只會更新到自己的通知
// @Tags        notifications
// @Accept      json
// @Produce     json
// @Param       body body     api.MarkNotificationsRequest true "通知 ID 列表"
// @Success     200  {object} api.MarkNotificationsResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /notifications/read [put]
func MarkNotificationsReadHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.MarkNotificationsRequest
		if err := c.Bind(&req); err != nil {
			return handler.BadRequest(c, "invalid request body")
		}
		if err := c.Validate(&req); err != nil || len(req.NotificationIDs) == 0 {
			return handler.BadRequest(c, "notification_ids must be a non-empty array")
		}

		claims, ok := middleware.Claims(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}
		var owner *int
		if !claims.IsAdmin() {
			owner = &claims.UserID
		}

		count, err := markNotificationsRead(c.Request().Context(), db, req.NotificationIDs, owner)
		if err != nil {
			return handler.InternalError(c, err)
		}
		if count == 0 {
			return handler.NotFound(c, "No notifications found for the given IDs")
		}
		return c.JSON(http.StatusOK, api.MarkNotificationsResponse{
			Message:      "Notifications marked as read",
			UpdatedCount: count,
		})
	}
}
