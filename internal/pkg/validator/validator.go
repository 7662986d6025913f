package validator

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DateLayout      = "2006-01-02"
	TimeOfDayLayout = "15:04"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// Add appends a field error.
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, ValidationError{Field: field, Message: message})
}

// Err returns nil when no error was collected, so callers can `return errs.Err()`.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validation
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidUUID accepts any RFC 4122 UUID in canonical form.
func IsValidUUID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse(DateLayout, dateStr)
	return date, err == nil
}

// IsValidTimeOfDay accepts "HH:MM" and "HH:MM:SS".
func IsValidTimeOfDay(s string) (time.Duration, bool) {
	for _, layout := range []string{TimeOfDayLayout, "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, true
		}
	}
	return 0, false
}

var phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// Phone number validation, spaces and dashes are ignored
func IsValidPhoneNumber(phone string) bool {
	phone = strings.ReplaceAll(phone, " ", "")
	phone = strings.ReplaceAll(phone, "-", "")
	return phoneRegex.MatchString(phone)
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

// Username validation: 3-64 chars, A-Z, a-z, 0-9, ., _, -
var usernameRegex = regexp.MustCompile(`^[A-Za-z0-9._-]{3,64}$`)

func IsValidUsername(username string) bool {
	return usernameRegex.MatchString(username)
}

// ValidatePagination applies the defaults shared by every list endpoint.
func ValidatePagination(errs *ValidationErrors, page, limit *int) {
	if *page < 0 {
		errs.Add("page", "page must be a positive number")
	}
	if *page == 0 {
		*page = 1
	}
	if *limit < 0 {
		errs.Add("limit", "limit must be a positive number")
	}
	if *limit == 0 {
		*limit = 20
	}
	if *limit > 100 {
		errs.Add("limit", "limit must not exceed 100")
	}
}

// ValidateDateRange checks optional YYYY-MM-DD bounds and their order.
func ValidateDateRange(errs *ValidationErrors, startField string, start *string, endField string, end *string) {
	var from, to time.Time
	var okFrom, okTo bool
	if start != nil && *start != "" {
		if from, okFrom = IsValidDate(*start); !okFrom {
			errs.Add(startField, startField+" must be in YYYY-MM-DD format")
		}
	}
	if end != nil && *end != "" {
		if to, okTo = IsValidDate(*end); !okTo {
			errs.Add(endField, endField+" must be in YYYY-MM-DD format")
		}
	}
	if okFrom && okTo && to.Before(from) {
		errs.Add(endField, endField+" must not be before "+startField)
	}
}
