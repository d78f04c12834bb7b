package store

import (
	"context"
	"fmt"

	"volunteer-hub/internal/database"
	"volunteer-hub/internal/model"

	"github.com/jackc/pgx/v5"
)

const userColumns = `user_id, username, password, role, email, phone, year, department,
	skills, interests, availability, created_at`

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	if err := row.Scan(
		&u.UserID,
		&u.Username,
		&u.PasswordHash,
		&u.Role,
		&u.Email,
		&u.Phone,
		&u.Year,
		&u.Department,
		&u.Skills,
		&u.Interests,
		&u.Availability,
		&u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return u, nil
}

func GetUserByID(ctx context.Context, db database.Querier, userID int) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE user_id = $1`,
		userID,
	))
	if err != nil {
		return nil, fmt.Errorf("GetUserByID: %w", err)
	}
	return u, nil
}

func GetUserByUsername(ctx context.Context, db database.Querier, username string) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`,
		username,
	))
	if err != nil {
		return nil, fmt.Errorf("GetUserByUsername: %w", err)
	}
	return u, nil
}

func ListUsers(ctx context.Context, db database.Querier) ([]model.User, error) {
	rows, err := db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("ListUsers: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	return users, nil
}

// CreateUser 新增使用者，空白的 skills / interests / availability 套用預設值
func CreateUser(ctx context.Context, db database.Querier, u *model.User) (*model.User, error) {
	if u.Role == "" {
		u.Role = model.RoleVolunteer
	}
	if u.Skills == "" {
		u.Skills = model.DefaultSkills
	}
	if u.Interests == "" {
		u.Interests = model.DefaultInterests
	}
	if u.Availability == "" {
		u.Availability = model.DefaultAvailability
	}

	row := db.QueryRow(ctx,
		`INSERT INTO users (username, password, role, email, phone, year, department,
		                    skills, interests, availability)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING user_id, created_at`,
		u.Username,
		u.PasswordHash,
		u.Role,
		u.Email,
		u.Phone,
		u.Year,
		u.Department,
		u.Skills,
		u.Interests,
		u.Availability,
	)
	if err := row.Scan(&u.UserID, &u.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateUser: %w", err)
	}
	return u, nil
}

// UpdateUser 更新使用者資料；passwordHash 為 nil 時保留原密碼
func UpdateUser(ctx context.Context, db database.Querier, u *model.User, passwordHash *string) (*model.User, error) {
	updated, err := scanUser(db.QueryRow(ctx,
		`UPDATE users
		 SET username = $1,
		     password = COALESCE($2, password),
		     role = $3,
		     email = $4,
		     phone = $5,
		     year = $6,
		     department = $7,
		     skills = $8,
		     interests = $9,
		     availability = $10
		 WHERE user_id = $11
		 RETURNING `+userColumns,
		u.Username,
		passwordHash,
		u.Role,
		u.Email,
		u.Phone,
		u.Year,
		u.Department,
		u.Skills,
		u.Interests,
		u.Availability,
		u.UserID,
	))
	if err != nil {
		return nil, fmt.Errorf("UpdateUser: %w", err)
	}
	return updated, nil
}

func DeleteUser(ctx context.Context, db database.Querier, userID int) error {
	_, err := db.Exec(ctx,
		`DELETE FROM users WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("DeleteUser: %w", err)
	}
	return nil
}
