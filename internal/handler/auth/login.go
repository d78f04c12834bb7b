// File: internal/handler/auth/login.go
package auth

import (
	"net/http"
	"time"

	"volunteer-hub/internal/api"
	"volunteer-hub/internal/database"
	"volunteer-hub/internal/handler"
	"volunteer-hub/internal/middleware"
	"volunteer-hub/internal/service"
	"volunteer-hub/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	getUserByUsername = store.GetUserByUsername
	authenticateUser  = service.AuthenticateUser
	issueAccessToken  = service.IssueAccessToken
	createCheckIn     = store.CreateCheckIn
	closeOpenCheckIns = store.CloseOpenCheckIns
)

// LoginHandler 使用 Username/Password 驗證、回傳 JWT，並開始一筆出勤紀錄
// @Summary     登入使用者
// @Description 驗證帳號密碼後回傳存取令牌，同時新增一筆 check-in
// @Tags        users
// @Accept      json,application/x-www-form-urlencoded
// @Produce     json
// @Param       body body     api.LoginRequest true "登入資訊"
// @Success     200  {object} api.LoginResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /users/login [post]
func LoginHandler(db database.DB, ttl time.Duration) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := c.Bind(&req); err != nil {
			return handler.BadRequest(c, "invalid request body")
		}
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, "Username and password are required")
		}

		ctx := c.Request().Context()
		user, err := getUserByUsername(ctx, db, req.Username)
		if err != nil {
			if store.IsNotFound(err) {
				return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Invalid username or password"})
			}
			return handler.InternalError(c, err)
		}

		if err := authenticateUser(ctx, *user, req.Password); err != nil {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Invalid username or password"})
		}

		token, err := issueAccessToken(*user, ttl)
		if err != nil {
			return handler.InternalError(c, err)
		}

		if _, err := createCheckIn(ctx, db, user.UserID); err != nil {
			return handler.InternalError(c, err)
		}

		return c.JSON(http.StatusOK, api.LoginResponse{
			Message: "Login successful",
			Token:   token,
			User:    api.NewUserResponse(*user),
		})
	}
}

// LogoutHandler 結束呼叫者所有未登出的出勤紀錄
// @Summary     登出使用者
// @Tags        users
// @Produce     json
// @Success     200 {object} api.LogoutResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/logout [put]
func LogoutHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middleware.Claims(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}

		record, err := closeOpenCheckIns(c.Request().Context(), db, claims.UserID)
		if err != nil {
			if store.IsNotFound(err) {
				return handler.BadRequest(c, "No active check-in record found")
			}
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, api.LogoutResponse{Message: "Logout successful", Record: *record})
	}
}
