package http

import (
	"net/http"
	"time"

	"github.com/SkShizan/clg-project/internal/domain/attendance"
	"github.com/SkShizan/clg-project/internal/handler/http/middleware"
	"github.com/SkShizan/clg-project/internal/handler/http/response"
	"github.com/SkShizan/clg-project/internal/pkg/report"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	DailyReport(w http.ResponseWriter, r *http.Request)
	ExportDailyReport(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	location          *time.Location
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, location *time.Location) AttendanceHandler {
	return &AttendanceHandlerImpl{
		attendanceService: attendanceService,
		location:          location,
	}
}

// CheckIn implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	emp, ok := middleware.EmployeeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	record, err := h.attendanceService.CheckIn(r.Context(), emp)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check-in recorded", record)
}

// CheckOut implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	emp, ok := middleware.EmployeeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	record, err := h.attendanceService.CheckOut(r.Context(), emp)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check-out recorded", record)
}

// DailyReport implements AttendanceHandler.
func (h *AttendanceHandlerImpl) DailyReport(w http.ResponseWriter, r *http.Request) {
	dailyReport, err := h.attendanceService.DailyReport(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, dailyReport)
}

// ExportDailyReport implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ExportDailyReport(w http.ResponseWriter, r *http.Request) {
	dailyReport, err := h.attendanceService.DailyReport(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	buf, err := report.DailyAttendance(dailyReport, h.location)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, report.ContentTypeXLSX, report.DailyAttendanceFilename(dailyReport.Date), buf)
}
