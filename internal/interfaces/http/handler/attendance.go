package handler

import (
	"time"

	attendanceapp "github.com/dormsync/backend/internal/application/attendance"
	"github.com/dormsync/backend/internal/domain/attendance"
	"github.com/gin-gonic/gin"
)

// AttendanceHandler handles attendance tracking endpoints
type AttendanceHandler struct {
	BaseHandler
	attendanceService *attendanceapp.AttendanceService
}

// NewAttendanceHandler creates a new AttendanceHandler
func NewAttendanceHandler(attendanceService *attendanceapp.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceService: attendanceService,
	}
}

// RecordEventRequest represents a scan event. Identifier accepts a
// student identifier, user ID or email. Timestamp defaults to now.
type RecordEventRequest struct {
	Identifier string     `json:"identifier" binding:"required,max=255"`
	Timestamp  *time.Time `json:"timestamp"`
}

// OverrideAttendanceRequest represents an admin correction.
// Omitted fields stay unchanged; the clear flags null out an erroneous
// check time.
type OverrideAttendanceRequest struct {
	Status        *string    `json:"status" binding:"omitempty,oneof=present absent late"`
	CheckIn       *time.Time `json:"check_in"`
	CheckOut      *time.Time `json:"check_out"`
	ClearCheckIn  bool       `json:"clear_check_in"`
	ClearCheckOut bool       `json:"clear_check_out"`
}

// AttendanceLogResponse represents an attendance log entry
type AttendanceLogResponse struct {
	ID        string     `json:"id"`
	StudentID string     `json:"student_id"`
	Date      string     `json:"date"`
	CheckIn   *time.Time `json:"check_in"`
	CheckOut  *time.Time `json:"check_out"`
	Status    string     `json:"status"`
}

// RecordEventResponse reports which transition the event caused
type RecordEventResponse struct {
	Action string                `json:"action"`
	Log    AttendanceLogResponse `json:"log"`
}

func toAttendanceLogResponse(result attendanceapp.LogResult) AttendanceLogResponse {
	return AttendanceLogResponse{
		ID:        result.ID.String(),
		StudentID: result.StudentID.String(),
		Date:      result.Date.Format("2006-01-02"),
		CheckIn:   result.CheckIn,
		CheckOut:  result.CheckOut,
		Status:    string(result.Status),
	}
}

// RecordEvent godoc
// @Summary      Record a scan event
// @Description  The first event of a student's day checks them in, the second checks them out, further events are reported as completed
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Param        request body RecordEventRequest true "Scan event"
// @Success      200 {object} dto.Response{data=RecordEventResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /attendance [post]
func (h *AttendanceHandler) RecordEvent(c *gin.Context) {
	var req RecordEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	timestamp := time.Now()
	if req.Timestamp != nil {
		timestamp = *req.Timestamp
	}

	result, err := h.attendanceService.RecordEvent(c.Request.Context(), attendanceapp.RecordEventInput{
		Identifier: req.Identifier,
		Timestamp:  timestamp,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, RecordEventResponse{
		Action: string(result.Action),
		Log:    toAttendanceLogResponse(result.Log),
	})
}

// Override godoc
// @Summary      Override an attendance log
// @Description  Admin correction of status and check times on an existing log
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Param        id path string true "Attendance log ID"
// @Param        request body OverrideAttendanceRequest true "Override request"
// @Success      200 {object} dto.Response{data=AttendanceLogResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /attendance/{id} [patch]
func (h *AttendanceHandler) Override(c *gin.Context) {
	logID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req OverrideAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := attendanceapp.OverrideInput{
		LogID:         logID,
		CheckIn:       req.CheckIn,
		CheckOut:      req.CheckOut,
		ClearCheckIn:  req.ClearCheckIn,
		ClearCheckOut: req.ClearCheckOut,
	}
	if req.Status != nil {
		status := attendance.Status(*req.Status)
		input.Status = &status
	}

	result, err := h.attendanceService.Override(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toAttendanceLogResponse(*result))
}

// ListByDate godoc
// @Summary      List attendance for a date
// @Tags         attendance
// @Produce      json
// @Param        date query string false "Date in 2006-01-02 format, defaults to today"
// @Success      200 {object} dto.Response{data=[]AttendanceLogResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /attendance [get]
func (h *AttendanceHandler) ListByDate(c *gin.Context) {
	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.BadRequest(c, "Invalid date format, expected 2006-01-02")
			return
		}
		date = parsed
	}

	results, err := h.attendanceService.ListByDate(c.Request.Context(), date)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	logs := make([]AttendanceLogResponse, len(results))
	for i := range results {
		logs[i] = toAttendanceLogResponse(results[i])
	}

	h.Success(c, logs)
}

// ListByStudent godoc
// @Summary      List a student's attendance history
// @Tags         attendance
// @Produce      json
// @Param        id path string true "Student user ID"
// @Success      200 {object} dto.Response{data=[]AttendanceLogResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /attendance/students/{id} [get]
func (h *AttendanceHandler) ListByStudent(c *gin.Context) {
	studentID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	results, err := h.attendanceService.ListByStudent(c.Request.Context(), studentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	logs := make([]AttendanceLogResponse, len(results))
	for i := range results {
		logs[i] = toAttendanceLogResponse(results[i])
	}

	h.Success(c, logs)
}
