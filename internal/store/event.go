package store

import (
	"context"
	"fmt"

	"volunteer-hub/internal/database"
	"volunteer-hub/internal/model"

	"github.com/jackc/pgx/v5"
)

const eventColumns = `event_id, event_name, description, start_date, end_date, location, created_at`

func scanEvent(row pgx.Row) (*model.Event, error) {
	e := &model.Event{}
	if err := row.Scan(
		&e.EventID,
		&e.EventName,
		&e.Description,
		&e.StartDate.Time,
		&e.EndDate.Time,
		&e.Location,
		&e.CreatedAt,
	); err != nil {
		return nil, err
	}
	return e, nil
}

func CreateEvent(ctx context.Context, db database.Querier, e *model.Event) (*model.Event, error) {
	created, err := scanEvent(db.QueryRow(ctx,
		`INSERT INTO events (event_name, description, start_date, end_date, location)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+eventColumns,
		e.EventName,
		e.Description,
		e.StartDate.Time,
		e.EndDate.Time,
		e.Location,
	))
	if err != nil {
		return nil, fmt.Errorf("CreateEvent: %w", err)
	}
	return created, nil
}

func ListEvents(ctx context.Context, db database.Querier) ([]model.Event, error) {
	rows, err := db.Query(ctx, `SELECT `+eventColumns+` FROM events ORDER BY start_date, event_id`)
	if err != nil {
		return nil, fmt.Errorf("ListEvents: %w", err)
	}
	defer rows.Close()

	events := []model.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("ListEvents: %w", err)
		}
		events = append(events, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListEvents: %w", err)
	}
	return events, nil
}

func GetEvent(ctx context.Context, db database.Querier, eventID int) (*model.Event, error) {
	e, err := scanEvent(db.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE event_id = $1`,
		eventID,
	))
	if err != nil {
		return nil, fmt.Errorf("GetEvent: %w", err)
	}
	return e, nil
}

func UpdateEvent(ctx context.Context, db database.Querier, e *model.Event) (*model.Event, error) {
	updated, err := scanEvent(db.QueryRow(ctx,
		`UPDATE events
		 SET event_name = $1, description = $2, start_date = $3, end_date = $4, location = $5
		 WHERE event_id = $6
		 RETURNING `+eventColumns,
		e.EventName,
		e.Description,
		e.StartDate.Time,
		e.EndDate.Time,
		e.Location,
		e.EventID,
	))
	if err != nil {
		return nil, fmt.Errorf("UpdateEvent: %w", err)
	}
	return updated, nil
}

func DeleteEvent(ctx context.Context, db database.Querier, eventID int) error {
	if _, err := db.Exec(ctx, `DELETE FROM events WHERE event_id = $1`, eventID); err != nil {
		return fmt.Errorf("DeleteEvent: %w", err)
	}
	return nil
}
