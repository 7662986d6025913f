package notification

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/email"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/sse"
)

// Config holds notification service configuration
type Config struct {
	WorkerCount int    // default: 2
	QueueSize   int    // default: 256
	AdminEmail  string // leave request emails are skipped when empty
	ReviewURL   string // link to the admin leave review page
}

type service struct {
	hub    *sse.Hub
	mailer email.EmailService
	config Config

	queue    chan notification.CreateNotificationRequest
	wg       sync.WaitGroup
	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewNotificationService creates a new notification service with background workers
func NewNotificationService(hub *sse.Hub, mailer email.EmailService, cfg Config) notification.Service {
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 256
	}

	s := &service{
		hub:    hub,
		mailer: mailer,
		config: cfg,
		queue:  make(chan notification.CreateNotificationRequest, cfg.QueueSize),
		stopCh: make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	slog.Info("notification service started", "workers", cfg.WorkerCount, "queue_size", cfg.QueueSize)
	return s
}

func (s *service) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case req := <-s.queue:
			s.dispatch(id, req)
		case <-s.stopCh:
			// drain what is already queued
			for {
				select {
				case req := <-s.queue:
					s.dispatch(id, req)
				default:
					return
				}
			}
		}
	}
}

func (s *service) dispatch(worker int, req notification.CreateNotificationRequest) {
	n := notification.Notification{
		ID:        uuid.NewString(),
		Type:      req.Type,
		UserID:    req.UserID,
		Username:  req.Username,
		Message:   req.Message,
		Data:      req.Data,
		CreatedAt: time.Now(),
	}

	s.hub.Publish(notification.TopicAdmin, sse.Event{
		ID:    n.ID,
		Topic: notification.TopicAdmin,
		Event: string(n.Type),
		Data:  notification.NewNotificationResponse(n),
	})

	if req.Mail == nil || s.config.AdminEmail == "" || s.mailer == nil {
		return
	}
	m := req.Mail
	err := s.mailer.SendLeaveRequestNotice(s.config.AdminEmail, email.LeaveRequestData{
		Employee:  m.Employee,
		LeaveType: m.LeaveType,
		StartDate: m.StartDate,
		EndDate:   m.EndDate,
		Days:      m.Days,
		Reason:    m.Reason,
		ReviewURL: s.config.ReviewURL,
	})
	if err != nil {
		slog.Error("failed to send leave request email", "worker", worker, "request_id", m.RequestID, "error", err)
		return
	}
	slog.Info("leave request email sent", "worker", worker, "request_id", m.RequestID)
}

// Queue implements notification.Service. It never blocks the caller; a full queue drops the event.
func (s *service) Queue(req notification.CreateNotificationRequest) {
	select {
	case <-s.stopCh:
		slog.Warn("notification dropped after shutdown", "type", req.Type, "user_id", req.UserID)
		return
	default:
	}

	select {
	case s.queue <- req:
	default:
		slog.Warn("notification queue full, dropping event", "type", req.Type, "user_id", req.UserID)
	}
}

// Subscribe implements notification.Service.
func (s *service) Subscribe() (<-chan sse.Event, func()) {
	return s.hub.Subscribe(notification.TopicAdmin)
}

// Stop implements notification.Service.
func (s *service) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		s.wg.Wait()
		slog.Info("notification service stopped")
	})
}
