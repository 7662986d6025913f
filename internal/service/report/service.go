package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/validator"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

type ReportServiceImpl struct {
	reportRepo report.ReportRepository
	loc        *time.Location
	now        func() time.Time
}

func NewReportService(reportRepo report.ReportRepository, loc *time.Location) report.ReportService {
	return &ReportServiceImpl{
		reportRepo: reportRepo,
		loc:        loc,
		now:        time.Now,
	}
}

// AttendanceSummary implements report.ReportService. An empty window is not an error.
func (s *ReportServiceImpl) AttendanceSummary(ctx context.Context, req report.AttendanceReportRequest) (report.Report, error) {
	if err := req.Validate(); err != nil {
		return report.Report{}, err
	}
	if req.UserID != nil && *req.UserID == "" {
		req.UserID = nil
	}

	w := req.Window(s.loc)

	records, err := s.reportRepo.ListAttendanceInWindow(ctx, w.Start, w.End, req.UserID)
	if err != nil {
		return report.Report{}, fmt.Errorf("failed to load attendance for report: %w", err)
	}
	leaves, err := s.reportRepo.ListApprovedLeavesInWindow(ctx, w.Start, w.LastDay(), req.UserID)
	if err != nil {
		return report.Report{}, fmt.Errorf("failed to load leave for report: %w", err)
	}

	if records == nil {
		records = []attendance.Record{}
	}

	return report.Report{
		Window:      w,
		GeneratedAt: s.now().In(s.loc),
		Summaries:   report.Aggregate(records, leaves, w),
		Records:     records,
	}, nil
}

// ExportXLSX implements report.ReportService.
func (s *ReportServiceImpl) ExportXLSX(ctx context.Context, req report.AttendanceReportRequest) (report.File, error) {
	rep, err := s.AttendanceSummary(ctx, req)
	if err != nil {
		return report.File{}, err
	}

	content, err := renderXLSX(rep, s.loc)
	if err != nil {
		slog.Error("failed to render xlsx report", "error", err)
		return report.File{}, fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}

	return report.File{
		Name:        fileName(rep, "xlsx"),
		ContentType: contentTypeXLSX,
		Content:     content,
	}, nil
}

// ExportPDF implements report.ReportService.
func (s *ReportServiceImpl) ExportPDF(ctx context.Context, req report.AttendanceReportRequest) (report.File, error) {
	rep, err := s.AttendanceSummary(ctx, req)
	if err != nil {
		return report.File{}, err
	}

	content, err := renderPDF(rep, s.loc)
	if err != nil {
		slog.Error("failed to render pdf report", "error", err)
		return report.File{}, fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}

	return report.File{
		Name:        fileName(rep, "pdf"),
		ContentType: contentTypePDF,
		Content:     content,
	}, nil
}

func fileName(rep report.Report, ext string) string {
	return fmt.Sprintf("reporte_asistencia_%s_%s.%s",
		rep.Window.Start.Format(validator.DateLayout),
		rep.Window.LastDay().Format(validator.DateLayout),
		ext,
	)
}

// recordRow is one raw attendance row as shown in both exports.
type recordRow struct {
	Username string
	Name     string
	Date     string
	CheckIn  string
	LunchIn  string
	LunchOut string
	CheckOut string
	Status   string
	Hours    float64
}

var recordHeaders = []string{"Usuario", "Nombre", "Fecha", "Entrada", "Inicio almuerzo", "Fin almuerzo", "Salida", "Estado", "Horas"}

var summaryHeaders = []string{"Usuario", "Nombre", "Días trabajados", "Tardanzas", "Horas totales", "Vacaciones", "Enfermedad", "Permiso"}

func toRecordRow(r attendance.Record, loc *time.Location) recordRow {
	clock := func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return t.In(loc).Format("15:04:05")
	}
	row := recordRow{
		Date:     r.WorkDate.Format(validator.DateLayout),
		CheckIn:  clock(&r.CheckInTime),
		LunchIn:  clock(r.LunchStartTime),
		LunchOut: clock(r.LunchEndTime),
		CheckOut: clock(r.CheckOutTime),
		Status:   r.Status,
		Hours:    attendance.RoundHours(r.WorkedDuration()),
	}
	if r.Username != nil {
		row.Username = *r.Username
	}
	if r.FullName != nil {
		row.Name = *r.FullName
	}
	if attendance.IsLeaveStatus(r.Status) {
		row.CheckIn = "-"
	}
	return row
}
