package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pathshala/pathshala-api/internal/core/domain"
	"github.com/pathshala/pathshala-api/internal/core/ports"
)

const dateLayout = "2006-01-02"

// AttendanceHandler handles attendance lookup, marking, and export.
type AttendanceHandler struct {
	service ports.AttendanceService
}

func NewAttendanceHandler(service ports.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: service}
}

type studentMarkRequest struct {
	StudentID   string `json:"student_id" validate:"required"`
	StudentName string `json:"student_name" validate:"required"`
	Present     bool   `json:"present"`
}

type markAttendanceRequest struct {
	Date     string               `json:"date" validate:"required"`
	Students []studentMarkRequest `json:"students"`
}

type attendanceResponse struct {
	Attendance *domain.AttendanceSheet `json:"attendance"`
}

// Get returns the sheet for a given day, or null when none exists.
//
// @Summary      Get a day's attendance
// @Tags         attendance
// @Produce      json
// @Param        date  query     string  true  "Date (YYYY-MM-DD)"
// @Success      200   {object}  attendanceResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /attendance [get]
func (h *AttendanceHandler) Get(c echo.Context) error {
	raw := c.QueryParam("date")
	if raw == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "date parameter is required")
	}
	day, err := time.Parse(dateLayout, raw)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	sheet, err := h.service.Get(c.Request().Context(), day)
	if err != nil {
		if errors.Is(err, domain.ErrAttendanceNotFound) {
			// Absence of a sheet is a normal answer, not an error.
			return c.JSON(http.StatusOK, attendanceResponse{Attendance: nil})
		}
		return err
	}
	return c.JSON(http.StatusOK, attendanceResponse{Attendance: sheet})
}

// Mark upserts a day's sheet (admin only). Without an explicit student
// list the roster is built from all enrolled accounts.
//
// @Summary      Mark attendance
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Param        body  body      markAttendanceRequest  true  "Sheet"
// @Success      201   {object}  attendanceResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /attendance [post]
func (h *AttendanceHandler) Mark(c echo.Context) error {
	var req markAttendanceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "date is required")
	}
	day, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	in := ports.MarkAttendanceInput{Date: day}
	for _, st := range req.Students {
		if st.StudentID == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "student_id is required")
		}
		in.Students = append(in.Students, ports.StudentMarkInput{
			StudentID:   st.StudentID,
			StudentName: st.StudentName,
			Present:     st.Present,
		})
	}

	sheet, err := h.service.Mark(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, attendanceResponse{Attendance: sheet})
}

// Export streams an XLSX workbook of all sheets in a date range (admin
// only).
//
// @Summary      Export attendance as XLSX
// @Tags         attendance
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        from  query     string  true  "Start date (YYYY-MM-DD)"
// @Param        to    query     string  true  "End date (YYYY-MM-DD)"
// @Success      200   {file}    binary
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /attendance/export [get]
func (h *AttendanceHandler) Export(c echo.Context) error {
	from, err := time.Parse(dateLayout, c.QueryParam("from"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "from must be YYYY-MM-DD")
	}
	to, err := time.Parse(dateLayout, c.QueryParam("to"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "to must be YYYY-MM-DD")
	}
	if to.Before(from) {
		return echo.NewHTTPError(http.StatusBadRequest, "to must not be before from")
	}

	data, err := h.service.Export(c.Request().Context(), from, to)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="attendance.xlsx"`)
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
