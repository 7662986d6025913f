package report

import (
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/validator"
)

// NoticeEmpty accompanies a report without rows.
const NoticeEmpty = "No se encontraron registros"

type AttendanceReportRequest struct {
	StartDate string  `json:"start_date"` // YYYY-MM-DD, inclusive
	EndDate   string  `json:"end_date"`   // YYYY-MM-DD, inclusive
	UserID    *string `json:"user_id,omitempty"`
}

func (r *AttendanceReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StartDate) {
		errs.Add("start_date", "start_date is required")
	}
	if validator.IsEmpty(r.EndDate) {
		errs.Add("end_date", "end_date is required")
	}
	validator.ValidateDateRange(&errs, "start_date", &r.StartDate, "end_date", &r.EndDate)
	if r.UserID != nil && *r.UserID != "" && !validator.IsValidUUID(*r.UserID) {
		errs.Add("user_id", "user_id must be a valid UUID")
	}

	return errs.Err()
}

// Window must only be called after Validate succeeded.
func (r *AttendanceReportRequest) Window(loc *time.Location) Window {
	first, _ := validator.IsValidDate(r.StartDate)
	last, _ := validator.IsValidDate(r.EndDate)
	return NewWindow(first, last, loc)
}

// Report is the aggregated summary plus the raw rows it was computed from.
type Report struct {
	Window      Window
	GeneratedAt time.Time
	Summaries   []UserSummary
	Records     []attendance.Record
}

type SummaryRow struct {
	UserID         string  `json:"user_id"`
	Username       string  `json:"username"`
	Nombre         string  `json:"nombre"`
	DiasTrabajados int     `json:"dias_trabajados"`
	DiasAsistidos  int     `json:"dias_asistidos"`
	TotalTardanzas int     `json:"total_tardanzas"`
	HorasTotales   float64 `json:"horas_totales"`
	DiasVacaciones int     `json:"dias_vacaciones"`
	DiasEnfermedad int     `json:"dias_enfermedad"`
	DiasPermiso    int     `json:"dias_permiso"`
}

type AttendanceReportResponse struct {
	StartDate   string       `json:"start_date"`
	EndDate     string       `json:"end_date"`
	GeneratedAt string       `json:"generated_at"`
	Notice      string       `json:"notice,omitempty"`
	Rows        []SummaryRow `json:"rows"`
}

func NewAttendanceReportResponse(r Report) AttendanceReportResponse {
	resp := AttendanceReportResponse{
		StartDate:   r.Window.Start.Format(validator.DateLayout),
		EndDate:     r.Window.LastDay().Format(validator.DateLayout),
		GeneratedAt: r.GeneratedAt.Format(time.RFC3339),
		Rows:        make([]SummaryRow, 0, len(r.Summaries)),
	}
	for _, s := range r.Summaries {
		resp.Rows = append(resp.Rows, SummaryRow{
			UserID:         s.UserID,
			Username:       s.Username,
			Nombre:         s.DisplayName(),
			DiasTrabajados: s.DiasTrabajados,
			DiasAsistidos:  s.DiasAsistidos,
			TotalTardanzas: s.TotalTardanzas,
			HorasTotales:   s.Hours(),
			DiasVacaciones: s.DiasVacaciones,
			DiasEnfermedad: s.DiasEnfermedad,
			DiasPermiso:    s.DiasPermiso,
		})
	}
	if len(resp.Rows) == 0 {
		resp.Notice = NoticeEmpty
	}
	return resp
}

// File is a rendered export ready to be streamed.
type File struct {
	Name        string
	ContentType string
	Content     []byte
}
