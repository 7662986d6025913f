package notification

import (
	"time"
)

// CreateNotificationRequest is queued by services after a successful write.
// Mail is only set for new leave requests.
type CreateNotificationRequest struct {
	Type     EventType
	UserID   string
	Username string
	Message  string
	Data     map[string]any
	Mail     *LeaveRequestMail
}

type NotificationResponse struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	UserID    string         `json:"user_id"`
	Username  string         `json:"username"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

func NewNotificationResponse(n Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		UserID:    n.UserID,
		Username:  n.Username,
		Message:   n.Message,
		Data:      n.Data,
		CreatedAt: n.CreatedAt,
	}
}

// SSETokenResponse represents the SSE token response
type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}
