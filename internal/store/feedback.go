package store

import (
	"context"
	"fmt"

	"volunteer-hub/internal/database"
	"volunteer-hub/internal/model"

	"github.com/jackc/pgx/v5"
)

const feedbackColumns = `feedback_id, assignment_id, user_id, rating, comment, created_at`

func scanFeedback(row pgx.Row) (*model.Feedback, error) {
	f := &model.Feedback{}
	if err := row.Scan(&f.FeedbackID, &f.AssignmentID, &f.UserID, &f.Rating, &f.Comment, &f.CreatedAt); err != nil {
		return nil, err
	}
	return f, nil
}

func listFeedback(ctx context.Context, db database.Querier, query string, args ...any) ([]model.Feedback, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Feedback{}
	for rows.Next() {
		f, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *f)
	}
	return out, rows.Err()
}

func CreateFeedback(ctx context.Context, db database.Querier, f *model.Feedback) (*model.Feedback, error) {
	created, err := scanFeedback(db.QueryRow(ctx,
		`INSERT INTO feedback (assignment_id, user_id, rating, comment)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+feedbackColumns,
		f.AssignmentID,
		f.UserID,
		f.Rating,
		f.Comment,
	))
	if err != nil {
		return nil, fmt.Errorf("CreateFeedback: %w", err)
	}
	return created, nil
}

func ListFeedback(ctx context.Context, db database.Querier) ([]model.Feedback, error) {
	out, err := listFeedback(ctx, db,
		`SELECT `+feedbackColumns+` FROM feedback ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("ListFeedback: %w", err)
	}
	return out, nil
}

func ListFeedbackByUser(ctx context.Context, db database.Querier, userID int) ([]model.Feedback, error) {
	out, err := listFeedback(ctx, db,
		`SELECT `+feedbackColumns+` FROM feedback WHERE user_id = $1 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("ListFeedbackByUser: %w", err)
	}
	return out, nil
}

func ListFeedbackByAssignment(ctx context.Context, db database.Querier, assignmentID int) ([]model.Feedback, error) {
	out, err := listFeedback(ctx, db,
		`SELECT `+feedbackColumns+` FROM feedback WHERE assignment_id = $1 ORDER BY created_at DESC`,
		assignmentID)
	if err != nil {
		return nil, fmt.Errorf("ListFeedbackByAssignment: %w", err)
	}
	return out, nil
}

func UpdateFeedback(ctx context.Context, db database.Querier, feedbackID, rating int, comment string) (*model.Feedback, error) {
	f, err := scanFeedback(db.QueryRow(ctx,
		`UPDATE feedback SET rating = $1, comment = $2
		 WHERE feedback_id = $3
		 RETURNING `+feedbackColumns,
		rating,
		comment,
		feedbackID,
	))
	if err != nil {
		return nil, fmt.Errorf("UpdateFeedback: %w", err)
	}
	return f, nil
}

func DeleteFeedback(ctx context.Context, db database.Querier, feedbackID int) (*model.Feedback, error) {
	f, err := scanFeedback(db.QueryRow(ctx,
		`DELETE FROM feedback WHERE feedback_id = $1 RETURNING `+feedbackColumns,
		feedbackID,
	))
	if err != nil {
		return nil, fmt.Errorf("DeleteFeedback: %w", err)
	}
	return f, nil
}
