package users

import (
	"net/http"

	"volunteer-hub/internal/api"
	"volunteer-hub/internal/database"
	"volunteer-hub/internal/handler"
	"volunteer-hub/internal/middleware"
	"volunteer-hub/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	listCheckIns          = store.ListCheckIns
	listVolunteerCheckIns = store.ListVolunteerCheckIns
	checkInHours          = store.CheckInHours
)

// @Summary     List check-ins
// @Description 列出登入出勤紀錄，可依 userId 篩選
// @Tags        users
// @Produce     json
// @Param       userId query    int false "使用者 ID"
// @Success     200    {array}  model.CheckIn
// @Failure     400    {object} api.ErrorResponse
// @Failure     500    {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/checkins [get]
func ListCheckInsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := handler.QueryID(c, "userId")
		if err != nil {
			return handler.BadRequest(c, "invalid userId")
		}
		records, err := listCheckIns(c.Request().Context(), db, userID)
		if err != nil {
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, records)
	}
}

// @Summary     List volunteer check-ins
// @Description 只列出非管理員的出勤紀錄
// @Tags        users
// @Produce     json
// @Success     200 {array}  model.CheckIn
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/volunteers/checkins [get]
func ListVolunteerCheckInsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		records, err := listVolunteerCheckIns(c.Request().Context(), db)
		if err != nil {
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, records)
	}
}

// @Summary     Volunteer hours
// @Description 依已結束的 check-in 時段加總時數；非管理員只能查詢自己
// @Tags        users
// @Produce     json
// @Param       userId query    int false "使用者 ID"
// @Success     200    {array}  model.UserHours
// @Failure     400    {object} api.ErrorResponse
// @Failure     403    {object} api.ErrorResponse
// @Failure     500    {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/hours [get]
func VolunteerHoursHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := handler.QueryID(c, "userId")
		if err != nil {
			return handler.BadRequest(c, "invalid userId")
		}
		claims, ok := middleware.Claims(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}
		if !claims.IsAdmin() {
			if userID == nil {
				userID = &claims.UserID
			} else if *userID != claims.UserID {
				return c.JSON(http.StatusForbidden, api.ErrorResponse{Message: "access to another user's data is not allowed"})
			}
		}

		hours, err := checkInHours(c.Request().Context(), db, userID)
		if err != nil {
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, hours)
	}
}
