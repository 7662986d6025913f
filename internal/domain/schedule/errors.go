package schedule

import "errors"

var (
	ErrScheduleNotFound   = errors.New("schedule not found")
	ErrScheduleInUse      = errors.New("no se puede eliminar el horario porque está asignado a uno o más empleados")
	ErrScheduleNameExists = errors.New("schedule with this name already exists")
)
