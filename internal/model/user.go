// File: internal/model/user.go
package model

import "time"

const (
	RoleAdmin     = "Admin"
	RoleVolunteer = "Volunteer"
)

// 新帳號的預設欄位值
const (
	DefaultSkills       = "enter skills"
	DefaultInterests    = "enter skills"
	DefaultAvailability = "Weekdays"
)

type User struct {
	UserID       int       `db:"user_id" json:"user_id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password" json:"-"`
	Role         string    `db:"role" json:"role"`
	Email        string    `db:"email" json:"email"`
	Phone        string    `db:"phone" json:"phone"`
	Year         string    `db:"year" json:"year"`
	Department   string    `db:"department" json:"department"`
	Skills       string    `db:"skills" json:"skills"`
	Interests    string    `db:"interests" json:"interests"`
	Availability string    `db:"availability" json:"availability"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// CheckIn 是一次登入到登出之間的出勤紀錄，CheckoutTime 為 nil 表示仍在線上
type CheckIn struct {
	CheckinID    int        `db:"checkin_id" json:"checkin_id"`
	UserID       int        `db:"user_id" json:"user_id"`
	CheckinTime  time.Time  `db:"checkin_time" json:"checkin_time"`
	CheckoutTime *time.Time `db:"checkout_time" json:"checkout_time"`
}

// UserHours 為依 check-in 時段加總的服務時數
type UserHours struct {
	UserID     int     `json:"user_id"`
	TotalHours float64 `json:"total_hours"`
}
