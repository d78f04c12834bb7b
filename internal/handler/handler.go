package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"volunteer-hub/internal/api"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ParamID 解析路徑參數中的正整數 ID
func ParamID(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

// QueryID 解析選填的查詢參數，未帶時回傳 nil
func QueryID(c echo.Context, name string) (*int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("invalid %s", name)
	}
	return &id, nil
}

func BadRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: msg})
}

func NotFound(c echo.Context, msg string) error {
	return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: msg})
}

func Conflict(c echo.Context, msg string) error {
	return c.JSON(http.StatusConflict, api.ErrorResponse{Message: msg})
}

// InternalError 記錄錯誤後回傳不含細節的 500
func InternalError(c echo.Context, err error) error {
	zap.L().Error("request failed",
		zap.String("request_id", requestID(c)),
		zap.String("method", c.Request().Method),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Internal server error"})
}

func requestID(c echo.Context) string {
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

// ErrorHandler 將 echo.HTTPError (middleware 的 401/403、找不到路由等) 轉成 api.ErrorResponse
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "Internal server error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(code)
		}
	} else {
		zap.L().Error("unhandled error", zap.String("request_id", requestID(c)), zap.Error(err))
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, api.ErrorResponse{Message: msg})
	}
	if err != nil {
		zap.L().Warn("write error response failed", zap.Error(err))
	}
}
