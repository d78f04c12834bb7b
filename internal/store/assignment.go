package store

import (
	"context"
	"fmt"

	"volunteer-hub/internal/database"
	"volunteer-hub/internal/model"

	"github.com/jackc/pgx/v5"
)

const assignmentColumns = `assignment_id, task_id, user_id, status, priority_level,
	estimated_completion_time, assigned_at, updated_at`

func scanAssignment(row pgx.Row) (*model.Assignment, error) {
	a := &model.Assignment{}
	if err := row.Scan(
		&a.AssignmentID,
		&a.TaskID,
		&a.UserID,
		&a.Status,
		&a.PriorityLevel,
		&a.EstimatedCompletionTime,
		&a.AssignedAt,
		&a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return a, nil
}

func CreateAssignment(ctx context.Context, db database.Querier, a *model.Assignment) (*model.Assignment, error) {
	created, err := scanAssignment(db.QueryRow(ctx,
		`INSERT INTO assignments (task_id, user_id, priority_level, estimated_completion_time)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+assignmentColumns,
		a.TaskID,
		a.UserID,
		a.PriorityLevel,
		a.EstimatedCompletionTime,
	))
	if err != nil {
		return nil, fmt.Errorf("CreateAssignment: %w", err)
	}
	return created, nil
}

// ListAssignments 列出指派，userID 不為 nil 時只列出該志工的指派
func ListAssignments(ctx context.Context, db database.Querier, userID *int) ([]model.Assignment, error) {
	rows, err := db.Query(ctx,
		`SELECT `+assignmentColumns+` FROM assignments
		 WHERE ($1::int IS NULL OR user_id = $1)
		 ORDER BY assignment_id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListAssignments: %w", err)
	}
	defer rows.Close()

	out := []model.Assignment{}
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("ListAssignments: %w", err)
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListAssignments: %w", err)
	}
	return out, nil
}

func GetAssignment(ctx context.Context, db database.Querier, assignmentID int) (*model.Assignment, error) {
	a, err := scanAssignment(db.QueryRow(ctx,
		`SELECT `+assignmentColumns+` FROM assignments WHERE assignment_id = $1`,
		assignmentID,
	))
	if err != nil {
		return nil, fmt.Errorf("GetAssignment: %w", err)
	}
	return a, nil
}

func UpdateAssignmentStatus(ctx context.Context, db database.Querier, assignmentID int, status string) (*model.Assignment, error) {
	a, err := scanAssignment(db.QueryRow(ctx,
		`UPDATE assignments
		 SET status = $1, updated_at = now()
		 WHERE assignment_id = $2
		 RETURNING `+assignmentColumns,
		status,
		assignmentID,
	))
	if err != nil {
		return nil, fmt.Errorf("UpdateAssignmentStatus: %w", err)
	}
	return a, nil
}

// DeleteAssignment 刪除並回傳被刪除的指派；不存在時回傳 pgx.ErrNoRows
func DeleteAssignment(ctx context.Context, db database.Querier, assignmentID int) (*model.Assignment, error) {
	a, err := scanAssignment(db.QueryRow(ctx,
		`DELETE FROM assignments WHERE assignment_id = $1 RETURNING `+assignmentColumns,
		assignmentID,
	))
	if err != nil {
		return nil, fmt.Errorf("DeleteAssignment: %w", err)
	}
	return a, nil
}
