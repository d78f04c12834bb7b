package store

import (
	"context"
	"fmt"

	"volunteer-hub/internal/database"
	"volunteer-hub/internal/model"
)

// ListVolunteerSummaries 列出所有志工及其收到回饋的平均評分 (四捨五入到小數一位)
func ListVolunteerSummaries(ctx context.Context, db database.Querier) ([]model.VolunteerSummary, error) {
	rows, err := db.Query(ctx,
		`SELECT u.user_id, u.username, u.year, u.department, u.skills, u.availability,
		        COALESCE(ROUND(AVG(f.rating), 1), 0)::float8 AS avg_rating
		 FROM users u
		 LEFT JOIN assignments a ON u.user_id = a.user_id
		 LEFT JOIN feedback f ON a.assignment_id = f.assignment_id
		 WHERE u.role = 'Volunteer'
		 GROUP BY u.user_id
		 ORDER BY u.user_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListVolunteerSummaries: %w", err)
	}
	defer rows.Close()

	out := []model.VolunteerSummary{}
	for rows.Next() {
		var v model.VolunteerSummary
		if err := rows.Scan(&v.UserID, &v.Username, &v.Year, &v.Department, &v.Skills, &v.Availability, &v.AvgRating); err != nil {
			return nil, fmt.Errorf("ListVolunteerSummaries: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListVolunteerSummaries: %w", err)
	}
	return out, nil
}
