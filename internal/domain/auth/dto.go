package auth

import (
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/validator"
)

type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	user.Profile
}

func (r *RegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	user.ValidateCredentials(&errs, r.Username, r.Email, &r.Password, true)
	if r.ConfirmPassword != "" && r.ConfirmPassword != r.Password {
		errs.Add("confirm_password", "password and confirm_password do not match")
	}
	if r.FirstName == nil || validator.IsEmpty(*r.FirstName) {
		errs.Add("first_name", "first_name is required")
	}
	if r.LastName == nil || validator.IsEmpty(*r.LastName) {
		errs.Add("last_name", "last_name is required")
	}
	r.Profile.ValidateInto(&errs)

	return errs.Err()
}

type LoginRequest struct {
	Login    string `json:"login"` // username or email
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Login) {
		errs.Add("login", "login is required")
	} else if len(r.Login) > 120 {
		errs.Add("login", "login must not exceed 120 characters")
	}
	if validator.IsEmpty(r.Password) {
		errs.Add("password", "password is required")
	} else if len(r.Password) > 72 {
		errs.Add("password", "password must not exceed 72 characters")
	}

	return errs.Err()
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r *RefreshTokenRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.RefreshToken) {
		errs.Add("refresh_token", "refresh_token is required")
	}
	return errs.Err()
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

func (r *ForgotPasswordRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Email) {
		errs.Add("email", "email is required")
	} else if !validator.IsValidEmail(r.Email) {
		errs.Add("email", "email must be a valid email address")
	}
	return errs.Err()
}

type ResetPasswordRequest struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (r *ResetPasswordRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Token) {
		errs.Add("token", "token is required")
	}
	switch {
	case validator.IsEmpty(r.Password):
		errs.Add("password", "password is required")
	case len(r.Password) < 8:
		errs.Add("password", "password must be at least 8 characters long")
	case len(r.Password) > 72:
		errs.Add("password", "password must not exceed 72 characters")
	}
	if r.ConfirmPassword != r.Password {
		errs.Add("confirm_password", "password and confirm_password do not match")
	}
	return errs.Err()
}

type SessionTrackingRequest struct {
	UserAgent string
	IPAddress string
}

type TokenResponse struct {
	AccessToken           string            `json:"access_token"`
	AccessTokenExpiresIn  int64             `json:"access_token_expires_in"`
	RefreshToken          string            `json:"refresh_token"`
	RefreshTokenExpiresIn int64             `json:"refresh_token_expires_in"`
	User                  user.UserResponse `json:"user"`
}

type AccessTokenResponse struct {
	AccessToken          string `json:"access_token"`
	AccessTokenExpiresIn int64  `json:"access_token_expires_in"`
}
