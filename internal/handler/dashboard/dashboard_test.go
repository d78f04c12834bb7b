package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"volunteer-hub/internal/cache"
	"volunteer-hub/internal/database"
	"volunteer-hub/internal/model"
	"volunteer-hub/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newCtx(e *echo.Echo, userID string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.SetParamNames("userId")
		c.SetParamValues(userID)
	}
	return c, rec
}

func restore() {
	getDashboardStats = store.GetDashboardStats
	getTaskCompletion = store.GetTaskCompletion
	topVolunteers = store.TopVolunteers
	topVolunteerOfMonth = store.TopVolunteerOfMonth
	recentActivity = store.RecentActivity
	recentNotifications = store.RecentNotifications
	assignedTasks = store.AssignedTasks
	upcomingEvents = store.UpcomingEvents
	getTaskStatistics = store.GetTaskStatistics
}

// memCache 以 map 模擬 Redis
func memCache(kv map[string][]byte) *cache.FakeCache {
	return &cache.FakeCache{
		GetFn: func(_ context.Context, key string) *redis.StringCmd {
			if v, ok := kv[key]; ok {
				return redis.NewStringResult(string(v), nil)
			}
			return redis.NewStringResult("", redis.Nil)
		},
		SetFn: func(_ context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
			kv[key] = value.([]byte)
			return redis.NewStatusResult("OK", nil)
		},
	}
}

func TestStatsHandlerCaches(t *testing.T) {
	t.Cleanup(restore)
	e := echo.New()

	calls := 0
	getDashboardStats = func(context.Context, database.Querier) (*model.DashboardStats, error) {
		calls++
		return &model.DashboardStats{TotalVolunteers: 4, TotalTasks: 9, UpcomingEvents: 2, VolunteerHours: 12.5}, nil
	}
	kv := map[string][]byte{}
	h := StatsHandler(nil, memCache(kv), time.Minute)

	for i := 0; i < 2; i++ {
		ctx, rec := newCtx(e, "")
		require.NoError(t, h(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"totalVolunteers":4,"totalTasks":9,"upcomingEvents":2,"volunteerHours":12.5}`, rec.Body.String())
	}
	require.Equal(t, 1, calls)
	require.Contains(t, kv, "adashboard:stats")
}

func TestStatsHandlerCacheDown(t *testing.T) {
	t.Cleanup(restore)
	e := echo.New()

	getDashboardStats = func(context.Context, database.Querier) (*model.DashboardStats, error) {
		return &model.DashboardStats{TotalVolunteers: 1}, nil
	}
	down := &cache.FakeCache{
		GetFn: func(context.Context, string) *redis.StringCmd { return redis.NewStringResult("", errors.New("conn refused")) },
		SetFn: func(context.Context, string, any, time.Duration) *redis.StatusCmd {
			return redis.NewStatusResult("", errors.New("conn refused"))
		},
	}
	ctx, rec := newCtx(e, "")
	require.NoError(t, StatsHandler(nil, down, time.Minute)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"totalVolunteers":1`)
}

func TestInvalidateOnWrite(t *testing.T) {
	t.Cleanup(restore)
	e := echo.New()

	calls := 0
	getDashboardStats = func(context.Context, database.Querier) (*model.DashboardStats, error) {
		calls++
		return &model.DashboardStats{TotalTasks: calls}, nil
	}
	kv := map[string][]byte{}
	cch := memCache(kv)
	var deleted []string
	cch.DelFn = func(_ context.Context, keys ...string) *redis.IntCmd {
		deleted = append(deleted, keys...)
		for _, k := range keys {
			delete(kv, k)
		}
		return redis.NewIntResult(int64(len(keys)), nil)
	}
	stats := StatsHandler(nil, cch, time.Minute)
	mw := InvalidateOnWrite(cch)

	serve := func(method string, h echo.HandlerFunc) (*httptest.ResponseRecorder, error) {
		req := httptest.NewRequest(method, "/", nil)
		rec := httptest.NewRecorder()
		return rec, mw(h)(e.NewContext(req, rec))
	}

	rec, err := serve(http.MethodGet, stats)
	require.NoError(t, err)
	require.JSONEq(t, `{"totalVolunteers":0,"totalTasks":1,"upcomingEvents":0,"volunteerHours":0}`, rec.Body.String())
	require.Empty(t, deleted)

	_, err = serve(http.MethodPost, func(c echo.Context) error {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "bad"})
	})
	require.NoError(t, err)
	require.Empty(t, deleted)

	_, err = serve(http.MethodDelete, func(echo.Context) error { return echo.ErrForbidden })
	require.ErrorIs(t, err, echo.ErrForbidden)
	require.Empty(t, deleted)

	_, err = serve(http.MethodPut, func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })
	require.NoError(t, err)
	require.ElementsMatch(t, []string{
		"adashboard:stats", "adashboard:tasks", "adashboard:volunteer-hours",
		"adashboard:top-volunteer", "adashboard:activity-logs", "adashboard:notifications",
	}, deleted)
	require.NotContains(t, kv, "adashboard:stats")

	rec, err = serve(http.MethodGet, stats)
	require.NoError(t, err)
	require.Contains(t, rec.Body.String(), `"totalTasks":2`)
	require.Equal(t, 2, calls)
}

func TestInvalidateOnWriteCacheDown(t *testing.T) {
	e := echo.New()
	down := &cache.FakeCache{
		DelFn: func(context.Context, ...string) *redis.IntCmd { return redis.NewIntResult(0, errors.New("conn refused")) },
	}
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	h := InvalidateOnWrite(down)(func(c echo.Context) error { return c.NoContent(http.StatusCreated) })
	require.NoError(t, h(e.NewContext(req, rec)))
	require.Equal(t, http.StatusCreated, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/", nil)
	h = InvalidateOnWrite(nil)(func(c echo.Context) error { return c.NoContent(http.StatusCreated) })
	require.NoError(t, h(e.NewContext(req, httptest.NewRecorder())))
}

func TestAdminHandlersLoadErrors(t *testing.T) {
	t.Cleanup(restore)
	e := echo.New()
	boom := errors.New("db")

	getDashboardStats = func(context.Context, database.Querier) (*model.DashboardStats, error) { return nil, boom }
	getTaskCompletion = func(context.Context, database.Querier) (*model.TaskCompletion, error) { return nil, boom }
	topVolunteers = func(context.Context, database.Querier, int) ([]model.VolunteerHours, error) { return nil, boom }
	topVolunteerOfMonth = func(context.Context, database.Querier) (*model.VolunteerHours, error) { return nil, boom }
	recentActivity = func(context.Context, database.Querier, int) ([]model.ActivityItem, error) { return nil, boom }
	recentNotifications = func(context.Context, database.Querier, int) ([]model.DashboardNotification, error) { return nil, boom }

	handlers := []echo.HandlerFunc{
		StatsHandler(nil, nil, time.Minute),
		TaskCompletionHandler(nil, nil, time.Minute),
		TopVolunteersHandler(nil, nil, time.Minute),
		TopVolunteerOfMonthHandler(nil, nil, time.Minute),
		RecentActivityHandler(nil, nil, time.Minute),
		RecentNotificationsHandler(nil, nil, time.Minute),
	}
	for _, h := range handlers {
		ctx, rec := newCtx(e, "")
		require.NoError(t, h(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	}
}

func TestAdminHandlers(t *testing.T) {
	t.Cleanup(restore)
	e := echo.New()

	getTaskCompletion = func(context.Context, database.Querier) (*model.TaskCompletion, error) {
		return &model.TaskCompletion{Completed: 3, Total: 7}, nil
	}
	topVolunteers = func(_ context.Context, _ database.Querier, limit int) ([]model.VolunteerHours, error) {
		require.Equal(t, recentLimit, limit)
		return []model.VolunteerHours{{Name: "amy", Hours: 10}}, nil
	}
	recentActivity = func(_ context.Context, _ database.Querier, limit int) ([]model.ActivityItem, error) {
		require.Equal(t, recentLimit, limit)
		d, _ := model.ParseDate("2025-04-01")
		return []model.ActivityItem{{ID: 1, Activity: "amy completed task: Setup for Fair", Date: d, Hours: 2}}, nil
	}
	recentNotifications = func(_ context.Context, _ database.Querier, limit int) ([]model.DashboardNotification, error) {
		return []model.DashboardNotification{{ID: 2, Message: "Task overdue", Type: "warning"}}, nil
	}

	cases := []struct {
		h    echo.HandlerFunc
		want string
	}{
		{TaskCompletionHandler(nil, nil, time.Minute), `"completed":3`},
		{TopVolunteersHandler(nil, nil, time.Minute), `"name":"amy"`},
		{RecentActivityHandler(nil, nil, time.Minute), `"date":"2025-04-01"`},
		{RecentNotificationsHandler(nil, nil, time.Minute), `"type":"warning"`},
	}
	for _, tc := range cases {
		ctx, rec := newCtx(e, "")
		require.NoError(t, tc.h(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), tc.want)
	}
}

func TestTopVolunteerOfMonthHandler(t *testing.T) {
	t.Cleanup(restore)
	e := echo.New()

	topVolunteerOfMonth = func(context.Context, database.Querier) (*model.VolunteerHours, error) {
		return nil, pgx.ErrNoRows
	}
	ctx, rec := newCtx(e, "")
	require.NoError(t, TopVolunteerOfMonthHandler(nil, nil, time.Minute)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"name":"No data","hours":0}`, rec.Body.String())

	topVolunteerOfMonth = func(context.Context, database.Querier) (*model.VolunteerHours, error) {
		return &model.VolunteerHours{Name: "amy", Hours: 6.5}, nil
	}
	ctx, rec = newCtx(e, "")
	require.NoError(t, TopVolunteerOfMonthHandler(nil, nil, time.Minute)(ctx))
	var got model.VolunteerHours
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, model.VolunteerHours{Name: "amy", Hours: 6.5}, got)
}

func TestVolunteerDashboardHandlers(t *testing.T) {
	t.Cleanup(restore)
	e := echo.New()

	for _, h := range []echo.HandlerFunc{AssignedTasksHandler(nil), UpcomingEventsHandler(nil), TaskStatisticsHandler(nil)} {
		ctx, rec := newCtx(e, "abc")
		require.NoError(t, h(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	}

	assignedTasks = func(_ context.Context, _ database.Querier, userID int) ([]model.AssignedTask, error) {
		require.Equal(t, 4, userID)
		return []model.AssignedTask{{ID: 2, AssignmentID: 8, Title: "Task 2", Skills: []string{"a", "b"}, Status: model.StatusPending}}, nil
	}
	upcomingEvents = func(_ context.Context, _ database.Querier, userID, limit int) ([]model.UpcomingEvent, error) {
		require.Equal(t, upcomingLimit, limit)
		return []model.UpcomingEvent{{ID: 1, Title: "Fair", AvailableTasks: []model.EventTask{{ID: 3, Name: "Setup"}}}}, nil
	}
	getTaskStatistics = func(context.Context, database.Querier, int) (*model.TaskStatistics, error) {
		return &model.TaskStatistics{TotalTasks: 4, CompletedTasks: 1, TotalHoursLogged: 3.5}, nil
	}

	ctx, rec := newCtx(e, "4")
	require.NoError(t, AssignedTasksHandler(nil)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"skills":["a","b"]`)
	require.Contains(t, rec.Body.String(), `"assignmentId":8`)

	ctx, rec = newCtx(e, "4")
	require.NoError(t, UpcomingEventsHandler(nil)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"availableTasks":[{"id":3,"name":"Setup"}]`)

	ctx, rec = newCtx(e, "4")
	require.NoError(t, TaskStatisticsHandler(nil)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"totalTasks":4,"completedTasks":1,"totalHoursLogged":3.5}`, rec.Body.String())

	boom := errors.New("db")
	assignedTasks = func(context.Context, database.Querier, int) ([]model.AssignedTask, error) { return nil, boom }
	upcomingEvents = func(context.Context, database.Querier, int, int) ([]model.UpcomingEvent, error) { return nil, boom }
	getTaskStatistics = func(context.Context, database.Querier, int) (*model.TaskStatistics, error) { return nil, boom }
	for _, h := range []echo.HandlerFunc{AssignedTasksHandler(nil), UpcomingEventsHandler(nil), TaskStatisticsHandler(nil)} {
		ctx, rec := newCtx(e, "4")
		require.NoError(t, h(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	}
}
