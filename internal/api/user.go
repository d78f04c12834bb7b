package api

import (
	"time"

	"volunteer-hub/internal/model"
)

// swagger:model api.CreateUserRequest
type CreateUserRequest struct {
	Username   string `json:"username" form:"username" validate:"required" example:"alice"`
	Password   string `json:"password" form:"password" validate:"required" example:"Secret123!"`
	Email      string `json:"email" form:"email" validate:"required,email" example:"alice@example.com"`
	Role       string `json:"role" form:"role" validate:"omitempty,oneof=Admin Volunteer" example:"Volunteer"`
	Phone      string `json:"phone" form:"phone" example:"0912345678"`
	Year       string `json:"year" form:"year" example:"3"`
	Department string `json:"department" form:"department" example:"CSE"`
}

// swagger:model api.UpdateUserRequest
type UpdateUserRequest struct {
	Username     string `json:"username" form:"username" validate:"required" example:"alice"`
	Password     string `json:"password" form:"password" example:""`
	Role         string `json:"role" form:"role" validate:"omitempty,oneof=Admin Volunteer" example:"Volunteer"`
	Email        string `json:"email" form:"email" validate:"required,email" example:"alice@example.com"`
	Phone        string `json:"phone" form:"phone"`
	Year         string `json:"year" form:"year"`
	Department   string `json:"department" form:"department"`
	Skills       string `json:"skills" form:"skills" example:"first aid, driving"`
	Interests    string `json:"interests" form:"interests"`
	Availability string `json:"availability" form:"availability" example:"Weekends"`
}

// swagger:model api.LoginRequest
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required" example:"alice"`
	Password string `json:"password" form:"password" validate:"required" example:"Secret123!"`
}

// swagger:model api.UserResponse
type UserResponse struct {
	UserID       int       `json:"user_id" example:"1"`
	Username     string    `json:"username" example:"alice"`
	Role         string    `json:"role" example:"Volunteer"`
	Email        string    `json:"email" example:"alice@example.com"`
	Phone        string    `json:"phone"`
	Year         string    `json:"year"`
	Department   string    `json:"department"`
	Skills       string    `json:"skills"`
	Interests    string    `json:"interests"`
	Availability string    `json:"availability"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewUserResponse 轉換為不含密碼的回應
func NewUserResponse(u model.User) UserResponse {
	return UserResponse{
		UserID:       u.UserID,
		Username:     u.Username,
		Role:         u.Role,
		Email:        u.Email,
		Phone:        u.Phone,
		Year:         u.Year,
		Department:   u.Department,
		Skills:       u.Skills,
		Interests:    u.Interests,
		Availability: u.Availability,
		CreatedAt:    u.CreatedAt,
	}
}

// swagger:model api.LoginResponse
type LoginResponse struct {
	Message string       `json:"message" example:"Login successful"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

// swagger:model api.LogoutResponse
type LogoutResponse struct {
	Message string        `json:"message" example:"Logout successful"`
	Record  model.CheckIn `json:"record"`
}
