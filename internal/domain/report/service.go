package report

import "context"

type ReportService interface {
	AttendanceSummary(ctx context.Context, req AttendanceReportRequest) (Report, error)
	ExportXLSX(ctx context.Context, req AttendanceReportRequest) (File, error)
	ExportPDF(ctx context.Context, req AttendanceReportRequest) (File, error)
}
