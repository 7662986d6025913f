package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/jwt"
)

const streamKeepAlive = 30 * time.Second

type StreamHandler interface {
	// Token issues a short-lived token; EventSource cannot send an Authorization header.
	Token(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type StreamHandlerImpl struct {
	jwtService      jwt.Service
	notificationSvc notification.Service
	userRepo        user.UserRepository
}

func NewStreamHandler(jwtService jwt.Service, notificationSvc notification.Service, userRepo user.UserRepository) StreamHandler {
	return &StreamHandlerImpl{
		jwtService:      jwtService,
		notificationSvc: notificationSvc,
		userRepo:        userRepo,
	}
}

// Token implements StreamHandler.
func (h *StreamHandlerImpl) Token(w http.ResponseWriter, r *http.Request) {
	token, expiresIn, err := h.jwtService.GenerateSSEToken(currentUserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, notification.SSETokenResponse{Token: token, ExpiresIn: expiresIn})
}

// Stream implements StreamHandler. The token's owner must still be an administrator.
func (h *StreamHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	userID, err := h.jwtService.ValidateSSEToken(r.URL.Query().Get("token"))
	if err != nil {
		response.Unauthorized(w, "Invalid or expired token")
		return
	}
	u, err := h.userRepo.GetByID(r.Context(), userID)
	if err != nil {
		response.Unauthorized(w, "Invalid or expired token")
		return
	}
	if !u.IsAdmin() {
		response.HandleError(w, user.ErrAdminPrivilegeRequired)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	events, unsubscribe := h.notificationSvc.Subscribe()
	defer unsubscribe()

	slog.Info("admin stream connected", "user_id", userID)
	defer slog.Info("admin stream disconnected", "user_id", userID)

	_, _ = w.Write([]byte(": connected\n\n"))
	flusher.Flush()

	keepAlive := time.NewTicker(streamKeepAlive)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if _, err := ev.WriteTo(w); err != nil {
				slog.Warn("admin stream write failed", "user_id", userID, "error", err)
				return
			}
			flusher.Flush()
		case <-keepAlive.C:
			if _, err := w.Write([]byte(": ping\n\n")); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
