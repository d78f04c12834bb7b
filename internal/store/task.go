package store

import (
	"context"
	"fmt"

	"volunteer-hub/internal/database"
	"volunteer-hub/internal/model"

	"github.com/jackc/pgx/v5"
)

const taskColumns = `task_id, event_id, task_name, description, required_skills, status, created_at`

func scanTask(row pgx.Row) (*model.Task, error) {
	t := &model.Task{}
	if err := row.Scan(
		&t.TaskID,
		&t.EventID,
		&t.TaskName,
		&t.Description,
		&t.RequiredSkills,
		&t.Status,
		&t.CreatedAt,
	); err != nil {
		return nil, err
	}
	return t, nil
}

func CreateTask(ctx context.Context, db database.Querier, t *model.Task) (*model.Task, error) {
	if t.Status == "" {
		t.Status = model.StatusPending
	}
	created, err := scanTask(db.QueryRow(ctx,
		`INSERT INTO tasks (event_id, task_name, description, required_skills, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+taskColumns,
		t.EventID,
		t.TaskName,
		t.Description,
		t.RequiredSkills,
		t.Status,
	))
	if err != nil {
		return nil, fmt.Errorf("CreateTask: %w", err)
	}
	return created, nil
}

// ListTasks 列出任務，eventID 不為 nil 時只列出該活動的任務
func ListTasks(ctx context.Context, db database.Querier, eventID *int) ([]model.Task, error) {
	rows, err := db.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks
		 WHERE ($1::int IS NULL OR event_id = $1)
		 ORDER BY task_id`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListTasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("ListTasks: %w", err)
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListTasks: %w", err)
	}
	return tasks, nil
}

func GetTask(ctx context.Context, db database.Querier, taskID int) (*model.Task, error) {
	t, err := scanTask(db.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE task_id = $1`,
		taskID,
	))
	if err != nil {
		return nil, fmt.Errorf("GetTask: %w", err)
	}
	return t, nil
}

// UpdateTask 更新任務；Status 為空字串時保留原狀態
func UpdateTask(ctx context.Context, db database.Querier, t *model.Task) (*model.Task, error) {
	updated, err := scanTask(db.QueryRow(ctx,
		`UPDATE tasks
		 SET event_id = $1, task_name = $2, description = $3, required_skills = $4,
		     status = COALESCE(NULLIF($5, ''), status)
		 WHERE task_id = $6
		 RETURNING `+taskColumns,
		t.EventID,
		t.TaskName,
		t.Description,
		t.RequiredSkills,
		t.Status,
		t.TaskID,
	))
	if err != nil {
		return nil, fmt.Errorf("UpdateTask: %w", err)
	}
	return updated, nil
}

func UpdateTaskStatus(ctx context.Context, db database.Querier, taskID int, status string) (*model.Task, error) {
	updated, err := scanTask(db.QueryRow(ctx,
		`UPDATE tasks SET status = $1 WHERE task_id = $2 RETURNING `+taskColumns,
		status,
		taskID,
	))
	if err != nil {
		return nil, fmt.Errorf("UpdateTaskStatus: %w", err)
	}
	return updated, nil
}

func DeleteTask(ctx context.Context, db database.Querier, taskID int) error {
	if _, err := db.Exec(ctx, `DELETE FROM tasks WHERE task_id = $1`, taskID); err != nil {
		return fmt.Errorf("DeleteTask: %w", err)
	}
	return nil
}
