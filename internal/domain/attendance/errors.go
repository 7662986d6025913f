package attendance

import "errors"

// Attendance domain errors
var (
	ErrAlreadyCheckedIn   = errors.New("attendance already recorded for this day")
	ErrAttendanceNotFound = errors.New("attendance record not found")
)

// Notices returned with a no-op attendance action.
const (
	NoticeCheckedIn            = "¡Entrada marcada con éxito!"
	NoticeCheckedOut           = "¡Salida marcada con éxito!"
	NoticeLunchStarted         = "¡Inicio de almuerzo registrado!"
	NoticeLunchEnded           = "¡Fin de almuerzo registrado!"
	NoticeAlreadyCheckedIn     = "Ya has marcado tu entrada hoy."
	NoticeNotCheckedIn         = "Aún no has marcado tu entrada hoy."
	NoticeDayCompleted         = "Ya has completado tu jornada por hoy."
	NoticeLunchAlreadyStarted  = "Ya has registrado el inicio de tu almuerzo."
	NoticeLunchNotStarted      = "Aún no has iniciado tu almuerzo."
	NoticeLunchAlreadyFinished = "Ya has registrado el fin de tu almuerzo."
	NoticeOnLeave              = "Hoy estás registrado con licencia."
)
