package notification

import (
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/sse"
)

// Service fans activity out to the admin live feed and, for leave requests, to email.
// Queue never blocks the caller and never reports delivery failures.
type Service interface {
	Queue(req CreateNotificationRequest)

	// Subscribe attaches a live feed listener to the admin topic.
	Subscribe() (<-chan sse.Event, func())

	// Stop drains the queue and waits for the workers.
	Stop()
}
