package handler

import (
	"net/http"
	"time"

	"volunteer-hub/internal/api"
	"volunteer-hub/internal/cache"
	"volunteer-hub/internal/database"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const pingKey = "health:ping"

// PingHandler 健康檢查
// @Summary     Health Check
// @Description 回傳 pong，並檢查資料庫與 Redis 連線是否正常
// @Tags        health
// @Produce     json
// @Success     200 {object} api.MessageResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /ping [get]
func PingHandler(db database.DB, cch cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := db.Ping(ctx); err != nil {
			zap.L().Error("database ping failed", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "database unhealthy"})
		}
		if err := cch.Set(ctx, pingKey, time.Now().Unix(), 10*time.Second).Err(); err != nil {
			zap.L().Error("cache ping failed", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "cache unhealthy"})
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "pong"})
	}
}
