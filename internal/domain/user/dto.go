package user

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/validator"
)

// Profile holds the personal fields shared by registration and administration.
type Profile struct {
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	BirthDate   *string `json:"birth_date,omitempty"` // YYYY-MM-DD
	PhoneNumber *string `json:"phone_number,omitempty"`
	Area        *string `json:"area,omitempty"`
	Department  *string `json:"department,omitempty"`
}

func (p *Profile) ValidateInto(errs *validator.ValidationErrors) {
	checkLen := func(field string, v *string, max int) {
		if v != nil && len(*v) > max {
			errs.Add(field, fmt.Sprintf("%s must not exceed %d characters", field, max))
		}
	}
	checkLen("first_name", p.FirstName, 50)
	checkLen("last_name", p.LastName, 50)
	checkLen("area", p.Area, 50)
	checkLen("department", p.Department, 50)

	if p.BirthDate != nil && *p.BirthDate != "" {
		if d, ok := validator.IsValidDate(*p.BirthDate); !ok {
			errs.Add("birth_date", "birth_date must be in YYYY-MM-DD format")
		} else if d.After(time.Now()) {
			errs.Add("birth_date", "birth_date must be in the past")
		}
	}
	if p.PhoneNumber != nil && *p.PhoneNumber != "" && !validator.IsValidPhoneNumber(*p.PhoneNumber) {
		errs.Add("phone_number", "phone_number must contain 7 to 15 digits")
	}
}

// Apply copies the profile onto u. Validate must have passed.
func (p *Profile) Apply(u *User) {
	u.FirstName = emptyToNil(p.FirstName)
	u.LastName = emptyToNil(p.LastName)
	u.PhoneNumber = emptyToNil(p.PhoneNumber)
	u.Area = emptyToNil(p.Area)
	u.Department = emptyToNil(p.Department)
	u.BirthDate = nil
	if p.BirthDate != nil && *p.BirthDate != "" {
		if d, ok := validator.IsValidDate(*p.BirthDate); ok {
			u.BirthDate = &d
		}
	}
}

func emptyToNil(s *string) *string {
	if s == nil || validator.IsEmpty(*s) {
		return nil
	}
	return s
}

// ValidateCredentials checks username, email and (when required) password.
func ValidateCredentials(errs *validator.ValidationErrors, username, email string, password *string, passwordRequired bool) {
	if validator.IsEmpty(username) {
		errs.Add("username", "username is required")
	} else if !validator.IsValidUsername(username) {
		errs.Add("username", "username must be 3-64 characters: letters, numbers, dots, underscores, and hyphens")
	}

	if validator.IsEmpty(email) {
		errs.Add("email", "email is required")
	} else if len(email) > 120 {
		errs.Add("email", "email must not exceed 120 characters")
	} else if !validator.IsValidEmail(email) {
		errs.Add("email", "email must be a valid email address")
	}

	switch {
	case password == nil || *password == "":
		if passwordRequired {
			errs.Add("password", "password is required")
		}
	case len(*password) < 8:
		errs.Add("password", "password must be at least 8 characters long")
	case len(*password) > 72:
		errs.Add("password", "password must not exceed 72 characters")
	}
}

// CreateUserRequest represents an administrator creating a user
type CreateUserRequest struct {
	Username   string  `json:"username"`
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	Role       string  `json:"role"`
	ScheduleID *string `json:"schedule_id,omitempty"`
	Profile
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	ValidateCredentials(&errs, r.Username, r.Email, &r.Password, true)
	if r.Role == "" {
		r.Role = string(RoleEmployee)
	}
	if !validator.IsInSlice(r.Role, RoleValues) {
		errs.Add("role", "role must be one of: employee, admin")
	}
	if r.ScheduleID != nil && *r.ScheduleID != "" && !validator.IsValidUUID(*r.ScheduleID) {
		errs.Add("schedule_id", "schedule_id must be a valid UUID")
	}
	r.Profile.ValidateInto(&errs)

	return errs.Err()
}

// UpdateUserRequest replaces the editable fields; an empty password keeps the current one.
type UpdateUserRequest struct {
	ID       string  `json:"-"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Password *string `json:"password,omitempty"`
	Role     string  `json:"role"`
	Profile
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "id must be a valid UUID")
	}
	ValidateCredentials(&errs, r.Username, r.Email, r.Password, false)
	if !validator.IsInSlice(r.Role, RoleValues) {
		errs.Add("role", "role must be one of: employee, admin")
	}
	r.Profile.ValidateInto(&errs)

	return errs.Err()
}

type AssignScheduleRequest struct {
	UserID     string  `json:"-"`
	ScheduleID *string `json:"schedule_id"` // null unassigns
}

func (r *AssignScheduleRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidUUID(r.UserID) {
		errs.Add("id", "id must be a valid UUID")
	}
	if r.ScheduleID != nil && !validator.IsValidUUID(*r.ScheduleID) {
		errs.Add("schedule_id", "schedule_id must be a valid UUID or null")
	}
	return errs.Err()
}

type UserFilter struct {
	Search     *string `json:"search,omitempty"` // username, email or name
	Role       *string `json:"role,omitempty"`
	Department *string `json:"department,omitempty"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
}

func (f *UserFilter) Validate() error {
	var errs validator.ValidationErrors
	validator.ValidatePagination(&errs, &f.Page, &f.Limit)
	if f.Role != nil && *f.Role != "" && !validator.IsInSlice(*f.Role, RoleValues) {
		errs.Add("role", "role must be one of: employee, admin")
	}
	return errs.Err()
}

// UserResponse represents user data in API responses
type UserResponse struct {
	ID           string  `json:"id"`
	Username     string  `json:"username"`
	Email        string  `json:"email"`
	Role         string  `json:"role"`
	FullName     string  `json:"full_name"`
	FirstName    *string `json:"first_name,omitempty"`
	LastName     *string `json:"last_name,omitempty"`
	BirthDate    *string `json:"birth_date,omitempty"`
	PhoneNumber  *string `json:"phone_number,omitempty"`
	Area         *string `json:"area,omitempty"`
	Department   *string `json:"department,omitempty"`
	ScheduleID   *string `json:"schedule_id,omitempty"`
	ScheduleName *string `json:"schedule_name,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

func NewUserResponse(u User) UserResponse {
	resp := UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Role:         string(u.Role),
		FullName:     u.FullName(),
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		PhoneNumber:  u.PhoneNumber,
		Area:         u.Area,
		Department:   u.Department,
		ScheduleID:   u.ScheduleID,
		ScheduleName: u.ScheduleName,
		CreatedAt:    u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    u.UpdatedAt.Format(time.RFC3339),
	}
	if u.BirthDate != nil {
		d := u.BirthDate.Format(validator.DateLayout)
		resp.BirthDate = &d
	}
	return resp
}

type ListUserResponse struct {
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
	Showing    string         `json:"showing"`
	Users      []UserResponse `json:"users"`
}
