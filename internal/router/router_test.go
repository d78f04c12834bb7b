package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"volunteer-hub/internal/cache"
	"volunteer-hub/internal/database"
	"volunteer-hub/internal/mailer"
	"volunteer-hub/internal/model"
	"volunteer-hub/internal/service"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type nopNotifier struct{}

func (nopNotifier) Notify(mailer.Message) {}

func newServer(db database.DB, cch cache.Cache) *echo.Echo {
	e := echo.New()
	Setup(e, db, cch, nopNotifier{}, Options{TokenTTL: time.Hour, CacheTTL: time.Minute})
	return e
}

func TestSetupRoutes(t *testing.T) {
	e := newServer(&database.FakeDB{}, &cache.FakeCache{})

	// 帶中介層的 group 會額外註冊 "" 與 "/*" 的 NotFound 路由
	groups := map[string]bool{
		"/api/users": true, "/api/events": true, "/api/tasks": true, "/api/assignments": true,
		"/api/notifications": true, "/api/feedback": true, "/api/activitylogs": true,
		"/api/adashboard": true, "/api/dashboard/:userId": true, "/api/volunteer": true,
	}
	got := map[string]struct{}{}
	var catchAll []string
	for _, r := range e.Routes() {
		got[r.Method+" "+r.Path] = struct{}{}
		if groups[r.Path] || groups[strings.TrimSuffix(r.Path, "/*")] {
			catchAll = append(catchAll, r.Method+" "+r.Path)
		}
	}

	expected := []string{
		http.MethodGet + " /api/ping",

		http.MethodPost + " /api/users/add",
		http.MethodPost + " /api/users/login",
		http.MethodPut + " /api/users/logout",
		http.MethodGet + " /api/users/me",
		http.MethodGet + " /api/users/all",
		http.MethodGet + " /api/users/get/:id",
		http.MethodPut + " /api/users/update/:id",
		http.MethodDelete + " /api/users/delete/:id",
		http.MethodGet + " /api/users/checkins",
		http.MethodGet + " /api/users/volunteers/checkins",
		http.MethodGet + " /api/users/hours",

		http.MethodPost + " /api/events",
		http.MethodGet + " /api/events",
		http.MethodGet + " /api/events/:id",
		http.MethodPut + " /api/events/:id",
		http.MethodDelete + " /api/events/:id",

		http.MethodPost + " /api/tasks",
		http.MethodGet + " /api/tasks",
		http.MethodGet + " /api/tasks/:id",
		http.MethodPut + " /api/tasks/:id",
		http.MethodDelete + " /api/tasks/:id",

		http.MethodPost + " /api/assignments",
		http.MethodGet + " /api/assignments",
		http.MethodGet + " /api/assignments/:id",
		http.MethodPut + " /api/assignments/:id",
		http.MethodDelete + " /api/assignments/:id",

		http.MethodPost + " /api/notifications",
		http.MethodGet + " /api/notifications/user/:user_id",
		http.MethodPut + " /api/notifications/read",
		http.MethodPut + " /api/notifications/:id",

		http.MethodPost + " /api/feedback",
		http.MethodGet + " /api/feedback",
		http.MethodGet + " /api/feedback/volunteer/:user_id",
		http.MethodGet + " /api/feedback/assignment/:assignment_id",
		http.MethodPut + " /api/feedback/:feedback_id",
		http.MethodDelete + " /api/feedback/:feedback_id",

		http.MethodPost + " /api/activitylogs/log-hours",
		http.MethodGet + " /api/activitylogs",

		http.MethodGet + " /api/adashboard/stats",
		http.MethodGet + " /api/adashboard/tasks",
		http.MethodGet + " /api/adashboard/volunteer-hours",
		http.MethodGet + " /api/adashboard/top-volunteer",
		http.MethodGet + " /api/adashboard/activity-logs",
		http.MethodGet + " /api/adashboard/notifications",

		http.MethodGet + " /api/dashboard/:userId/assigned-tasks",
		http.MethodGet + " /api/dashboard/:userId/upcoming-events",
		http.MethodGet + " /api/dashboard/:userId/task-statistics",

		http.MethodGet + " /api/volunteer/volunteers",
		http.MethodPut + " /api/volunteer/tasks/:taskId",
	}

	want := map[string]bool{}
	for _, k := range expected {
		want[k] = true
		_, ok := got[k]
		require.True(t, ok, "missing route %s", k)
	}
	for k := range got {
		if want[k] {
			continue
		}
		require.Contains(t, catchAll, k, "unexpected route %s", k)
	}
}

func token(t *testing.T, id int, role string) string {
	t.Helper()
	tok, err := service.IssueAccessToken(model.User{UserID: id, Role: role}, time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestRouteProtection(t *testing.T) {
	service.SetSigningSecret("router-test")
	t.Cleanup(func() { service.SetSigningSecret("") })

	db := &database.FakeDB{
		PingFn: func(context.Context) error { return nil },
		QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) {
			return &database.FakeRows{}, nil
		},
	}
	cch := &cache.FakeCache{
		SetFn: func(context.Context, string, any, time.Duration) *redis.StatusCmd {
			return redis.NewStatusResult("OK", nil)
		},
	}
	e := newServer(db, cch)

	volunteer := token(t, 7, model.RoleVolunteer)
	admin := token(t, 1, model.RoleAdmin)

	cases := []struct {
		name   string
		method string
		path   string
		auth   string
		want   int
	}{
		{"ping is public", http.MethodGet, "/api/ping", "", http.StatusOK},
		{"events need auth", http.MethodGet, "/api/events", "", http.StatusUnauthorized},
		{"bad token", http.MethodGet, "/api/events", "Bearer nope", http.StatusUnauthorized},
		{"volunteer reads events", http.MethodGet, "/api/events", volunteer, http.StatusOK},
		{"volunteer cannot list users", http.MethodGet, "/api/users/all", volunteer, http.StatusForbidden},
		{"admin lists users", http.MethodGet, "/api/users/all", admin, http.StatusOK},
		{"volunteer cannot delete events", http.MethodDelete, "/api/events/1", volunteer, http.StatusForbidden},
		{"own dashboard", http.MethodGet, "/api/dashboard/7/assigned-tasks", volunteer, http.StatusOK},
		{"other dashboard", http.MethodGet, "/api/dashboard/8/assigned-tasks", volunteer, http.StatusForbidden},
		{"admin sees any dashboard", http.MethodGet, "/api/dashboard/8/assigned-tasks", admin, http.StatusOK},
		{"other notifications", http.MethodGet, "/api/notifications/user/8", volunteer, http.StatusForbidden},
		{"admin dashboard", http.MethodGet, "/api/adashboard/stats", volunteer, http.StatusForbidden},
		{"volunteer list", http.MethodGet, "/api/volunteer/volunteers", volunteer, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.auth != "" {
				req.Header.Set(echo.HeaderAuthorization, tc.auth)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			require.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestWritesInvalidateDashboardCache(t *testing.T) {
	service.SetSigningSecret("router-test")
	t.Cleanup(func() { service.SetSigningSecret("") })

	db := &database.FakeDB{
		ExecFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
			return pgconn.NewCommandTag("DELETE 1"), nil
		},
		QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) {
			return &database.FakeRows{}, nil
		},
	}
	var deleted []string
	cch := &cache.FakeCache{
		DelFn: func(_ context.Context, keys ...string) *redis.IntCmd {
			deleted = append(deleted, keys...)
			return redis.NewIntResult(int64(len(keys)), nil)
		},
	}
	e := newServer(db, cch)

	do := func(method, path, auth string) int {
		req := httptest.NewRequest(method, path, nil)
		req.Header.Set(echo.HeaderAuthorization, auth)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusOK, do(http.MethodGet, "/api/events", token(t, 1, model.RoleAdmin)))
	require.Empty(t, deleted)

	require.Equal(t, http.StatusForbidden, do(http.MethodDelete, "/api/events/1", token(t, 7, model.RoleVolunteer)))
	require.Empty(t, deleted)

	require.Equal(t, http.StatusNoContent, do(http.MethodDelete, "/api/events/1", token(t, 1, model.RoleAdmin)))
	require.Len(t, deleted, 6)
	require.Contains(t, deleted, "adashboard:stats")
}
