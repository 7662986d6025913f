package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	AttendanceSummary(w http.ResponseWriter, r *http.Request)
	ExportXLSX(w http.ResponseWriter, r *http.Request)
	ExportPDF(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

func reportRequestFromQuery(r *http.Request) report.AttendanceReportRequest {
	q := r.URL.Query()
	return report.AttendanceReportRequest{
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
		UserID:    queryPtr(r, "user_id"),
	}
}

// AttendanceSummary implements ReportHandler.
func (h *ReportHandlerImpl) AttendanceSummary(w http.ResponseWriter, r *http.Request) {
	rep, err := h.reportService.AttendanceSummary(r.Context(), reportRequestFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	resp := report.NewAttendanceReportResponse(rep)
	response.SuccessWithMessage(w, resp.Notice, resp)
}

// ExportXLSX implements ReportHandler.
func (h *ReportHandlerImpl) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, h.reportService.ExportXLSX)
}

// ExportPDF implements ReportHandler.
func (h *ReportHandlerImpl) ExportPDF(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, h.reportService.ExportPDF)
}

// export writes nothing until the whole file has been rendered.
func (h *ReportHandlerImpl) export(w http.ResponseWriter, r *http.Request, render func(context.Context, report.AttendanceReportRequest) (report.File, error)) {
	file, err := render(r.Context(), reportRequestFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Content)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(file.Content); err != nil {
		slog.Error("failed to write export", "file", file.Name, "error", err)
	}
}
