package user

import (
	"strings"
	"time"
)

type Role string

const (
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

var RoleValues = []string{string(RoleEmployee), string(RoleAdmin)}

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	FirstName    *string
	LastName     *string
	BirthDate    *time.Time
	PhoneNumber  *string
	Area         *string
	Department   *string
	ScheduleID   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Read model
	ScheduleName *string
}

// FullName joins first and last name, falling back to the username.
func (u User) FullName() string {
	var parts []string
	if u.FirstName != nil && *u.FirstName != "" {
		parts = append(parts, *u.FirstName)
	}
	if u.LastName != nil && *u.LastName != "" {
		parts = append(parts, *u.LastName)
	}
	if len(parts) == 0 {
		return u.Username
	}
	return strings.Join(parts, " ")
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
