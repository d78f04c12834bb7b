package notifications

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"volunteer-hub/internal/database"
	"volunteer-hub/internal/mailer"
	"volunteer-hub/internal/middleware"
	"volunteer-hub/internal/model"
	"volunteer-hub/internal/service"
	"volunteer-hub/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type stubValidator struct{ err error }

func (s *stubValidator) Validate(i interface{}) error { return s.err }

type recordingNotifier struct{ sent []mailer.Message }

func (r *recordingNotifier) Notify(m mailer.Message) { r.sent = append(r.sent, m) }

func newJSONCtx(e *echo.Echo, method, param, val, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if param != "" {
		c.SetParamNames(param)
		c.SetParamValues(val)
	}
	return c, rec
}

func withClaims(c echo.Context, userID int, role string) echo.Context {
	c.Set(middleware.ContextUserKey, &service.CustomClaims{UserID: userID, Role: role})
	return c
}

func restore() {
	getUserByID = store.GetUserByID
	createNotification = store.CreateNotification
	listNotificationsByUser = store.ListNotificationsByUser
	getNotification = store.GetNotification
	markNotificationRead = store.MarkNotificationRead
	markNotificationsRead = store.MarkNotificationsRead
}

func TestSendNotificationHandler(t *testing.T) {
	e := echo.New()
	const body = `{"user_id":2,"message":"Shift moved to 10am"}`

	t.Run("missing fields", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{err: errors.New("v")}
		ctx, rec := newJSONCtx(e, http.MethodPost, "", "", `{}`)
		require.NoError(t, SendNotificationHandler(nil, nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "User ID and message are required")
	})

	t.Run("unknown user", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getUserByID = func(context.Context, database.Querier, int) (*model.User, error) { return nil, pgx.ErrNoRows }
		n := &recordingNotifier{}
		ctx, rec := newJSONCtx(e, http.MethodPost, "", "", body)
		require.NoError(t, SendNotificationHandler(nil, n)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Contains(t, rec.Body.String(), "User not found")
		require.Empty(t, n.sent)
	})

	t.Run("insert error", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getUserByID = func(_ context.Context, _ database.Querier, id int) (*model.User, error) {
			return &model.User{UserID: id, Email: "v@x.io"}, nil
		}
		createNotification = func(context.Context, database.Querier, int, string, string) (*model.Notification, error) {
			return nil, errors.New("db")
		}
		n := &recordingNotifier{}
		ctx, rec := newJSONCtx(e, http.MethodPost, "", "", body)
		require.NoError(t, SendNotificationHandler(nil, n)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Empty(t, n.sent)
	})

	t.Run("sent", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getUserByID = func(_ context.Context, _ database.Querier, id int) (*model.User, error) {
			return &model.User{UserID: id, Email: "v@x.io"}, nil
		}
		createNotification = func(_ context.Context, _ database.Querier, userID int, msg, status string) (*model.Notification, error) {
			require.Equal(t, 2, userID)
			require.Empty(t, status)
			return &model.Notification{NotificationID: 6, UserID: userID, Message: msg, Status: model.NotificationSent}, nil
		}
		n := &recordingNotifier{}
		ctx, rec := newJSONCtx(e, http.MethodPost, "", "", body)
		require.NoError(t, SendNotificationHandler(nil, n)(ctx))
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Contains(t, rec.Body.String(), "Notification sent successfully")
		require.Len(t, n.sent, 1)
		require.Equal(t, "v@x.io", n.sent[0].To)
		require.Equal(t, "New Notification", n.sent[0].Subject)
		require.Contains(t, n.sent[0].Body, "Shift moved to 10am")
	})
}

func TestListUserNotificationsHandler(t *testing.T) {
	e := echo.New()
	t.Cleanup(restore)

	ctx, rec := newJSONCtx(e, http.MethodGet, "user_id", "x", "")
	require.NoError(t, ListUserNotificationsHandler(nil)(ctx))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	listNotificationsByUser = func(_ context.Context, _ database.Querier, id int) ([]model.Notification, error) {
		return []model.Notification{{NotificationID: 1, UserID: id}}, nil
	}
	ctx, rec = newJSONCtx(e, http.MethodGet, "user_id", "3", "")
	require.NoError(t, ListUserNotificationsHandler(nil)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"user_id":3`)

	listNotificationsByUser = func(context.Context, database.Querier, int) ([]model.Notification, error) {
		return nil, errors.New("db")
	}
	ctx, rec = newJSONCtx(e, http.MethodGet, "user_id", "3", "")
	require.NoError(t, ListUserNotificationsHandler(nil)(ctx))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMarkNotificationReadHandler(t *testing.T) {
	e := echo.New()
	marked := func(_ context.Context, _ database.Querier, id int) (*model.Notification, error) {
		return &model.Notification{NotificationID: id, UserID: 3, Status: model.NotificationRead}, nil
	}

	t.Run("admin marks any", func(t *testing.T) {
		t.Cleanup(restore)
		markNotificationRead = marked
		ctx, rec := newJSONCtx(e, http.MethodPut, "id", "5", "")
		withClaims(ctx, 1, model.RoleAdmin)
		require.NoError(t, MarkNotificationReadHandler(nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "Notification marked as read")
	})

	t.Run("volunteer marks own", func(t *testing.T) {
		t.Cleanup(restore)
		getNotification = func(_ context.Context, _ database.Querier, id int) (*model.Notification, error) {
			return &model.Notification{NotificationID: id, UserID: 3}, nil
		}
		markNotificationRead = marked
		ctx, rec := newJSONCtx(e, http.MethodPut, "id", "5", "")
		withClaims(ctx, 3, model.RoleVolunteer)
		require.NoError(t, MarkNotificationReadHandler(nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("volunteer marks other", func(t *testing.T) {
		t.Cleanup(restore)
		getNotification = func(_ context.Context, _ database.Querier, id int) (*model.Notification, error) {
			return &model.Notification{NotificationID: id, UserID: 9}, nil
		}
		ctx, rec := newJSONCtx(e, http.MethodPut, "id", "5", "")
		withClaims(ctx, 3, model.RoleVolunteer)
		require.NoError(t, MarkNotificationReadHandler(nil)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing", func(t *testing.T) {
		t.Cleanup(restore)
		markNotificationRead = func(context.Context, database.Querier, int) (*model.Notification, error) {
			return nil, pgx.ErrNoRows
		}
		ctx, rec := newJSONCtx(e, http.MethodPut, "id", "5", "")
		withClaims(ctx, 1, model.RoleAdmin)
		require.NoError(t, MarkNotificationReadHandler(nil)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Contains(t, rec.Body.String(), "Notification not found")

		getNotification = func(context.Context, database.Querier, int) (*model.Notification, error) {
			return nil, pgx.ErrNoRows
		}
		ctx, rec = newJSONCtx(e, http.MethodPut, "id", "5", "")
		withClaims(ctx, 3, model.RoleVolunteer)
		require.NoError(t, MarkNotificationReadHandler(nil)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("bad id and no claims", func(t *testing.T) {
		t.Cleanup(restore)
		ctx, rec := newJSONCtx(e, http.MethodPut, "id", "z", "")
		require.NoError(t, MarkNotificationReadHandler(nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)

		ctx, rec = newJSONCtx(e, http.MethodPut, "id", "5", "")
		require.NoError(t, MarkNotificationReadHandler(nil)(ctx))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestMarkNotificationsReadHandler(t *testing.T) {
	e := echo.New()
	e.Validator = &stubValidator{}

	t.Run("empty ids", func(t *testing.T) {
		t.Cleanup(restore)
		ctx, rec := newJSONCtx(e, http.MethodPut, "", "", `{"notification_ids":[]}`)
		withClaims(ctx, 3, model.RoleVolunteer)
		require.NoError(t, MarkNotificationsReadHandler(nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not an array", func(t *testing.T) {
		t.Cleanup(restore)
		ctx, rec := newJSONCtx(e, http.MethodPut, "", "", `{"notification_ids":"1"}`)
		withClaims(ctx, 3, model.RoleVolunteer)
		require.NoError(t, MarkNotificationsReadHandler(nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("volunteer scoped to self", func(t *testing.T) {
		t.Cleanup(restore)
		markNotificationsRead = func(_ context.Context, _ database.Querier, ids []int, owner *int) (int64, error) {
			require.Equal(t, []int{1, 2}, ids)
			require.Equal(t, 3, *owner)
			return 2, nil
		}
		ctx, rec := newJSONCtx(e, http.MethodPut, "", "", `{"notification_ids":[1,2]}`)
		withClaims(ctx, 3, model.RoleVolunteer)
		require.NoError(t, MarkNotificationsReadHandler(nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"message":"Notifications marked as read","updated_count":2}`, rec.Body.String())
	})

	t.Run("none updated", func(t *testing.T) {
		t.Cleanup(restore)
		markNotificationsRead = func(_ context.Context, _ database.Querier, _ []int, owner *int) (int64, error) {
			require.Nil(t, owner)
			return 0, nil
		}
		ctx, rec := newJSONCtx(e, http.MethodPut, "", "", `{"notification_ids":[7]}`)
		withClaims(ctx, 1, model.RoleAdmin)
		require.NoError(t, MarkNotificationsReadHandler(nil)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Contains(t, rec.Body.String(), "No notifications found for the given IDs")
	})

	t.Run("db error", func(t *testing.T) {
		t.Cleanup(restore)
		markNotificationsRead = func(context.Context, database.Querier, []int, *int) (int64, error) {
			return 0, errors.New("db")
		}
		ctx, rec := newJSONCtx(e, http.MethodPut, "", "", `{"notification_ids":[7]}`)
		withClaims(ctx, 1, model.RoleAdmin)
		require.NoError(t, MarkNotificationsReadHandler(nil)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
