package users

import (
	"net/http"
	"strings"

	"volunteer-hub/internal/api"
	"volunteer-hub/internal/database"
	"volunteer-hub/internal/handler"
	"volunteer-hub/internal/middleware"
	"volunteer-hub/internal/model"
	"volunteer-hub/internal/service"
	"volunteer-hub/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	hashPassword = service.HashPassword
	createUser   = store.CreateUser
	getUserByID  = store.GetUserByID
	listUsers    = store.ListUsers
	updateUser   = store.UpdateUser
	deleteUser   = store.DeleteUser
)

// @Summary     Register a user
// @Description 建立新帳號，角色預設為 Volunteer；建立 Admin 需以管理員身分呼叫
// @Tags        users
// @Accept      json,application/x-www-form-urlencoded
// @Produce     json
// @Param       body body     api.CreateUserRequest true "使用者資料"
// @Success     201  {object} api.UserResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     409  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /users/add [post]
func CreateUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateUserRequest
		if err := c.Bind(&req); err != nil {
			return handler.BadRequest(c, "invalid request body")
		}
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, "Username, password and email are required")
		}

		if req.Role == model.RoleAdmin {
			claims, ok := middleware.Claims(c)
			if !ok || !claims.IsAdmin() {
				return c.JSON(http.StatusForbidden, api.ErrorResponse{Message: "Only admins can create admin accounts"})
			}
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			return handler.InternalError(c, err)
		}

		user, err := createUser(c.Request().Context(), db, &model.User{
			Username:     strings.TrimSpace(req.Username),
			PasswordHash: hash,
			Role:         req.Role,
			Email:        strings.ToLower(req.Email),
			Phone:        req.Phone,
			Year:         req.Year,
			Department:   req.Department,
		})
		if err != nil {
			if store.IsUniqueViolation(err) {
				return handler.Conflict(c, "Username or email already exists")
			}
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusCreated, api.NewUserResponse(*user))
	}
}

// @Summary     Get current user
// @Description 透過 JWT 取得當前使用者資料
// @Tags        users
// @Produce     json
// @Success     200 {object} api.UserResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/me [get]
func GetMeHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middleware.Claims(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}
		return respondUser(c, db, claims.UserID)
	}
}

// @Summary     List users
// @Tags        users
// @Produce     json
// @Success     200 {array}  api.UserResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/all [get]
func ListUsersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := listUsers(c.Request().Context(), db)
		if err != nil {
			return handler.InternalError(c, err)
		}
		resp := make([]api.UserResponse, 0, len(users))
		for _, u := range users {
			resp = append(resp, api.NewUserResponse(u))
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// @Summary     Get a user by ID
// @Tags        users
// @Produce     json
// @Param       id  path     int true "使用者 ID"
// @Success     200 {object} api.UserResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/get/{id} [get]
func GetUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c, "id")
		if err != nil {
			return handler.BadRequest(c, "invalid user ID")
		}
		return respondUser(c, db, id)
	}
}

func respondUser(c echo.Context, db database.DB, id int) error {
	user, err := getUserByID(c.Request().Context(), db, id)
	if err != nil {
		if store.IsNotFound(err) {
			return handler.NotFound(c, "User not found")
		}
		return handler.InternalError(c, err)
	}
	return c.JSON(http.StatusOK, api.NewUserResponse(*user))
}

// @Summary     Update a user
// @Description 管理員或本人可更新；密碼留空則保留原密碼，只有管理員能變更角色
// @Tags        users
// @Accept      json,application/x-www-form-urlencoded
// @Produce     json
// @Param       id   path     int                   true "使用者 ID"
// @Param       body body     api.UpdateUserRequest true "使用者資料"
// @Success     200  {object} api.UserResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     409  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/update/{id} [put]
func UpdateUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c, "id")
		if err != nil {
			return handler.BadRequest(c, "invalid user ID")
		}
		claims, ok := middleware.Claims(c)
		if !ok || !claims.CanAccessUser(id) {
			return c.JSON(http.StatusForbidden, api.ErrorResponse{Message: "access to another user's data is not allowed"})
		}

		var req api.UpdateUserRequest
		if err := c.Bind(&req); err != nil {
			return handler.BadRequest(c, "invalid request body")
		}
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, "Username and email are required")
		}

		ctx := c.Request().Context()
		existing, err := getUserByID(ctx, db, id)
		if err != nil {
			if store.IsNotFound(err) {
				return handler.NotFound(c, "User not found")
			}
			return handler.InternalError(c, err)
		}

		role := existing.Role
		if req.Role != "" && req.Role != existing.Role {
			if !claims.IsAdmin() {
				return c.JSON(http.StatusForbidden, api.ErrorResponse{Message: "Only admins can change roles"})
			}
			role = req.Role
		}

		// 密碼留空表示不變更
		var passwordHash *string
		if req.Password != "" {
			hash, err := hashPassword(req.Password)
			if err != nil {
				return handler.InternalError(c, err)
			}
			passwordHash = &hash
		}

		updated, err := updateUser(ctx, db, &model.User{
			UserID:       id,
			Username:     strings.TrimSpace(req.Username),
			Role:         role,
			Email:        strings.ToLower(req.Email),
			Phone:        req.Phone,
			Year:         req.Year,
			Department:   req.Department,
			Skills:       req.Skills,
			Interests:    req.Interests,
			Availability: req.Availability,
		}, passwordHash)
		if err != nil {
			switch {
			case store.IsNotFound(err):
				return handler.NotFound(c, "User not found")
			case store.IsUniqueViolation(err):
				return handler.Conflict(c, "Username or email already exists")
			}
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, api.NewUserResponse(*updated))
	}
}

// @Summary     Delete a user
// @Tags        users
// @Param       id  path int true "使用者 ID"
// @Success     204 "No Content"
// @Failure     400 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/delete/{id} [delete]
func DeleteUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c, "id")
		if err != nil {
			return handler.BadRequest(c, "invalid user ID")
		}
		if err := deleteUser(c.Request().Context(), db, id); err != nil {
			return handler.InternalError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
