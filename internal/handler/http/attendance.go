package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	Today(w http.ResponseWriter, r *http.Request)
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	StartLunch(w http.ResponseWriter, r *http.Request)
	EndLunch(w http.ResponseWriter, r *http.Request)
	Mark(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)

	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	loc               *time.Location
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, loc *time.Location) AttendanceHandler {
	return &AttendanceHandlerImpl{
		attendanceService: attendanceService,
		loc:               loc,
	}
}

// act runs one daily action. Repeated or out-of-order actions still answer 200 with changed=false.
func (h *AttendanceHandlerImpl) act(w http.ResponseWriter, r *http.Request, do func(r *http.Request, userID string) (attendance.ActionResult, error)) {
	result, err := do(r, currentUserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, result.Notice, attendance.NewActionResponse(result, h.loc))
}

// CheckIn implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(r *http.Request, userID string) (attendance.ActionResult, error) {
		return h.attendanceService.CheckIn(r.Context(), userID)
	})
}

// CheckOut implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(r *http.Request, userID string) (attendance.ActionResult, error) {
		return h.attendanceService.CheckOut(r.Context(), userID)
	})
}

// StartLunch implements AttendanceHandler.
func (h *AttendanceHandlerImpl) StartLunch(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(r *http.Request, userID string) (attendance.ActionResult, error) {
		return h.attendanceService.StartLunch(r.Context(), userID)
	})
}

// EndLunch implements AttendanceHandler.
func (h *AttendanceHandlerImpl) EndLunch(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(r *http.Request, userID string) (attendance.ActionResult, error) {
		return h.attendanceService.EndLunch(r.Context(), userID)
	})
}

// Mark implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Mark(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(r *http.Request, userID string) (attendance.ActionResult, error) {
		return h.attendanceService.Mark(r.Context(), userID)
	})
}

// Today implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	today, err := h.attendanceService.Today(r.Context(), currentUserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, today)
}

func attendanceFilterFromQuery(r *http.Request) attendance.AttendanceFilter {
	filter := attendance.AttendanceFilter{
		UserID:    queryPtr(r, "user_id"),
		Status:    queryPtr(r, "status"),
		StartDate: queryPtr(r, "start_date"),
		EndDate:   queryPtr(r, "end_date"),
	}
	filter.Page, filter.Limit = pageParams(r)
	return filter
}

// GetMyAttendance implements AttendanceHandler.
func (h *AttendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	list, err := h.attendanceService.GetMyAttendance(r.Context(), currentUserID(r), attendanceFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, list)
}

// List implements AttendanceHandler.
func (h *AttendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.attendanceService.ListAttendance(r.Context(), attendanceFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, list)
}

// Get implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.attendanceService.GetAttendance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, rec)
}
