package dashboard

import (
	"context"
	"net/http"
	"time"

	"volunteer-hub/internal/cache"
	"volunteer-hub/internal/database"
	"volunteer-hub/internal/handler"
	"volunteer-hub/internal/model"
	"volunteer-hub/internal/store"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// 管理員儀表板各區塊的筆數上限
const recentLimit = 5

const keyPrefix = "adashboard:"

const (
	keyStats          = "stats"
	keyTasks          = "tasks"
	keyVolunteerHours = "volunteer-hours"
	keyTopVolunteer   = "top-volunteer"
	keyActivityLogs   = "activity-logs"
	keyNotifications  = "notifications"
)

// cacheKeys 所有管理員儀表板快取的完整 key
func cacheKeys() []string {
	keys := []string{keyStats, keyTasks, keyVolunteerHours, keyTopVolunteer, keyActivityLogs, keyNotifications}
	for i, k := range keys {
		keys[i] = keyPrefix + k
	}
	return keys
}

var (
	getDashboardStats   = store.GetDashboardStats
	getTaskCompletion   = store.GetTaskCompletion
	topVolunteers       = store.TopVolunteers
	topVolunteerOfMonth = store.TopVolunteerOfMonth
	recentActivity      = store.RecentActivity
	recentNotifications = store.RecentNotifications
)

// respondCached 以 Redis 快取彙總結果，快取失效或故障時直接查詢資料庫
func respondCached[T any](c echo.Context, cch cache.Cache, ttl time.Duration, key string, load func(context.Context) (T, error)) error {
	v, err := cache.Remember(c.Request().Context(), cch, keyPrefix+key, ttl, load)
	if err != nil {
		return handler.InternalError(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

// @Summary     Dashboard stats
// @Description 志工人數、任務數、即將舉行的活動數與總時數
// @Tags        adashboard
// @Produce     json
// @Success     200 {object} model.DashboardStats
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /adashboard/stats [get]
func StatsHandler(db database.DB, cch cache.Cache, ttl time.Duration) echo.HandlerFunc {
	return func(c echo.Context) error {
		return respondCached(c, cch, ttl, keyStats, func(ctx context.Context) (*model.DashboardStats, error) {
			return getDashboardStats(ctx, db)
		})
	}
}

// @Summary     Task completion
// @Tags        adashboard
// @Produce     json
// @Success     200 {object} model.TaskCompletion
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /adashboard/tasks [get]
func TaskCompletionHandler(db database.DB, cch cache.Cache, ttl time.Duration) echo.HandlerFunc {
	return func(c echo.Context) error {
		return respondCached(c, cch, ttl, keyTasks, func(ctx context.Context) (*model.TaskCompletion, error) {
			return getTaskCompletion(ctx, db)
		})
	}
}

// @Summary     Top volunteers by hours
// @Tags        adashboard
// @Produce     json
// @Success     200 {array}  model.VolunteerHours
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /adashboard/volunteer-hours [get]
func TopVolunteersHandler(db database.DB, cch cache.Cache, ttl time.Duration) echo.HandlerFunc {
	return func(c echo.Context) error {
		return respondCached(c, cch, ttl, keyVolunteerHours, func(ctx context.Context) ([]model.VolunteerHours, error) {
			return topVolunteers(ctx, db, recentLimit)
		})
	}
}

// @Summary     Top volunteer of the month
// @Description 本月時數最多的志工；沒有紀錄時回傳 No data
// @Tags        adashboard
// @Produce     json
// @Success     200 {object} model.VolunteerHours
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /adashboard/top-volunteer [get]
func TopVolunteerOfMonthHandler(db database.DB, cch cache.Cache, ttl time.Duration) echo.HandlerFunc {
	return func(c echo.Context) error {
		return respondCached(c, cch, ttl, keyTopVolunteer, func(ctx context.Context) (*model.VolunteerHours, error) {
			top, err := topVolunteerOfMonth(ctx, db)
			if store.IsNotFound(err) {
				return &model.VolunteerHours{Name: "No data", Hours: 0}, nil
			}
			return top, err
		})
	}
}

// @Summary     Recent activity
// @Tags        adashboard
// @Produce     json
// @Success     200 {array}  model.ActivityItem
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /adashboard/activity-logs [get]
func RecentActivityHandler(db database.DB, cch cache.Cache, ttl time.Duration) echo.HandlerFunc {
	return func(c echo.Context) error {
		return respondCached(c, cch, ttl, keyActivityLogs, func(ctx context.Context) ([]model.ActivityItem, error) {
			return recentActivity(ctx, db, recentLimit)
		})
	}
}

// @Summary     Recent notifications
// @Tags        adashboard
// @Produce     json
// @Success     200 {array}  model.DashboardNotification
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /adashboard/notifications [get]
func RecentNotificationsHandler(db database.DB, cch cache.Cache, ttl time.Duration) echo.HandlerFunc {
	return func(c echo.Context) error {
		return respondCached(c, cch, ttl, keyNotifications, func(ctx context.Context) ([]model.DashboardNotification, error) {
			return recentNotifications(ctx, db, recentLimit)
		})
	}
}

// InvalidateOnWrite 寫入請求成功後清除管理員儀表板快取，下一次讀取會重新以 SQL 計算
func InvalidateOnWrite(cch cache.Cache) echo.MiddlewareFunc {
	keys := cacheKeys()
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			switch c.Request().Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return err
			}
			if cch == nil || err != nil || c.Response().Status >= http.StatusBadRequest {
				return err
			}
			if derr := cch.Del(c.Request().Context(), keys...).Err(); derr != nil {
				zap.L().Warn("dashboard cache invalidation failed", zap.Error(derr))
			}
			return nil
		}
	}
}
