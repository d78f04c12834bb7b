package events

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"volunteer-hub/internal/database"
	"volunteer-hub/internal/model"
	"volunteer-hub/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type stubValidator struct{ err error }

func (s *stubValidator) Validate(i interface{}) error { return s.err }

func newJSONCtx(e *echo.Echo, method, id, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != "" {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	return c, rec
}

func restore() {
	createEvent = store.CreateEvent
	listEvents = store.ListEvents
	getEvent = store.GetEvent
	updateEvent = store.UpdateEvent
	deleteEvent = store.DeleteEvent
}

const validEvent = `{"event_name":"Cleanup","start_date":"2025-06-01","end_date":"2025-06-02","location":"Beach"}`

func TestCreateEventHandler(t *testing.T) {
	e := echo.New()

	cases := []struct {
		name string
		err  error
		body string
		msg  string
	}{
		{"bind error", nil, `{`, "invalid request body"},
		{"missing fields", errors.New("v"), `{}`, "Please fill in all required fields."},
		{"bad start", nil, `{"event_name":"x","start_date":"06/01/2025","end_date":"2025-06-02"}`, "Invalid date format. Use YYYY-MM-DD."},
		{"bad end", nil, `{"event_name":"x","start_date":"2025-06-01","end_date":"tomorrow"}`, "Invalid date format. Use YYYY-MM-DD."},
		{"end before start", nil, `{"event_name":"x","start_date":"2025-06-02","end_date":"2025-06-01"}`, "End date cannot be before start date."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Cleanup(restore)
			e.Validator = &stubValidator{err: tc.err}
			ctx, rec := newJSONCtx(e, http.MethodPost, "", tc.body)
			require.NoError(t, CreateEventHandler(nil)(ctx))
			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Contains(t, rec.Body.String(), tc.msg)
		})
	}

	t.Run("store error", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		createEvent = func(context.Context, database.Querier, *model.Event) (*model.Event, error) {
			return nil, errors.New("db")
		}
		ctx, rec := newJSONCtx(e, http.MethodPost, "", validEvent)
		require.NoError(t, CreateEventHandler(nil)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("date range rejected by db", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		createEvent = func(context.Context, database.Querier, *model.Event) (*model.Event, error) {
			return nil, &pgconn.PgError{Code: "23514"}
		}
		ctx, rec := newJSONCtx(e, http.MethodPost, "", validEvent)
		require.NoError(t, CreateEventHandler(nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "End date cannot be before start date.")
	})

	t.Run("same day ok", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		createEvent = func(_ context.Context, _ database.Querier, ev *model.Event) (*model.Event, error) {
			require.Equal(t, "2025-06-01", ev.StartDate.String())
			ev.EventID = 3
			return ev, nil
		}
		ctx, rec := newJSONCtx(e, http.MethodPost, "", `{"event_name":"x","start_date":"2025-06-01","end_date":"2025-06-01"}`)
		require.NoError(t, CreateEventHandler(nil)(ctx))
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Contains(t, rec.Body.String(), `"start_date":"2025-06-01"`)
		require.Contains(t, rec.Body.String(), `"event_id":3`)
	})
}

func TestListAndGetEventHandler(t *testing.T) {
	e := echo.New()

	t.Run("list", func(t *testing.T) {
		t.Cleanup(restore)
		listEvents = func(context.Context, database.Querier) ([]model.Event, error) {
			return []model.Event{{EventID: 1}, {EventID: 2}}, nil
		}
		ctx, rec := newJSONCtx(e, http.MethodGet, "", "")
		require.NoError(t, ListEventsHandler(nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"event_id":2`)

		listEvents = func(context.Context, database.Querier) ([]model.Event, error) { return nil, errors.New("db") }
		ctx, rec = newJSONCtx(e, http.MethodGet, "", "")
		require.NoError(t, ListEventsHandler(nil)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("get", func(t *testing.T) {
		t.Cleanup(restore)
		ctx, rec := newJSONCtx(e, http.MethodGet, "zero", "")
		require.NoError(t, GetEventHandler(nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)

		getEvent = func(context.Context, database.Querier, int) (*model.Event, error) { return nil, pgx.ErrNoRows }
		ctx, rec = newJSONCtx(e, http.MethodGet, "1", "")
		require.NoError(t, GetEventHandler(nil)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Contains(t, rec.Body.String(), "Event not found")

		getEvent = func(context.Context, database.Querier, int) (*model.Event, error) { return nil, errors.New("db") }
		ctx, rec = newJSONCtx(e, http.MethodGet, "1", "")
		require.NoError(t, GetEventHandler(nil)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)

		getEvent = func(_ context.Context, _ database.Querier, id int) (*model.Event, error) {
			return &model.Event{EventID: id, EventName: "Cleanup"}, nil
		}
		ctx, rec = newJSONCtx(e, http.MethodGet, "1", "")
		require.NoError(t, GetEventHandler(nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "Cleanup")
	})
}

func TestUpdateEventHandler(t *testing.T) {
	e := echo.New()
	e.Validator = &stubValidator{}

	t.Run("bad id", func(t *testing.T) {
		t.Cleanup(restore)
		ctx, rec := newJSONCtx(e, http.MethodPut, "x", validEvent)
		require.NoError(t, UpdateEventHandler(nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid dates", func(t *testing.T) {
		t.Cleanup(restore)
		ctx, rec := newJSONCtx(e, http.MethodPut, "2", `{"event_name":"x","start_date":"2025-13-01","end_date":"2025-06-01"}`)
		require.NoError(t, UpdateEventHandler(nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		t.Cleanup(restore)
		updateEvent = func(context.Context, database.Querier, *model.Event) (*model.Event, error) {
			return nil, pgx.ErrNoRows
		}
		ctx, rec := newJSONCtx(e, http.MethodPut, "2", validEvent)
		require.NoError(t, UpdateEventHandler(nil)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("date range rejected by db", func(t *testing.T) {
		t.Cleanup(restore)
		updateEvent = func(context.Context, database.Querier, *model.Event) (*model.Event, error) {
			return nil, &pgconn.PgError{Code: "23514"}
		}
		ctx, rec := newJSONCtx(e, http.MethodPut, "2", validEvent)
		require.NoError(t, UpdateEventHandler(nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "End date cannot be before start date.")
	})

	t.Run("ok", func(t *testing.T) {
		t.Cleanup(restore)
		updateEvent = func(_ context.Context, _ database.Querier, ev *model.Event) (*model.Event, error) {
			require.Equal(t, 2, ev.EventID)
			return ev, nil
		}
		ctx, rec := newJSONCtx(e, http.MethodPut, "2", validEvent)
		require.NoError(t, UpdateEventHandler(nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("db error", func(t *testing.T) {
		t.Cleanup(restore)
		updateEvent = func(context.Context, database.Querier, *model.Event) (*model.Event, error) {
			return nil, errors.New("db")
		}
		ctx, rec := newJSONCtx(e, http.MethodPut, "2", validEvent)
		require.NoError(t, UpdateEventHandler(nil)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestDeleteEventHandler(t *testing.T) {
	e := echo.New()
	t.Cleanup(restore)

	ctx, rec := newJSONCtx(e, http.MethodDelete, "-1", "")
	require.NoError(t, DeleteEventHandler(nil)(ctx))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	deleteEvent = func(context.Context, database.Querier, int) error { return nil }
	ctx, rec = newJSONCtx(e, http.MethodDelete, "4", "")
	require.NoError(t, DeleteEventHandler(nil)(ctx))
	require.Equal(t, http.StatusNoContent, rec.Code)

	deleteEvent = func(context.Context, database.Querier, int) error { return errors.New("db") }
	ctx, rec = newJSONCtx(e, http.MethodDelete, "4", "")
	require.NoError(t, DeleteEventHandler(nil)(ctx))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
