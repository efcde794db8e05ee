package handler

import (
	"time"

	facilityapp "github.com/dormsync/backend/internal/application/facility"
	"github.com/dormsync/backend/internal/domain/facility"
	"github.com/gin-gonic/gin"
)

// CleaningHandler handles cleaning schedule endpoints
type CleaningHandler struct {
	BaseHandler
	cleaningService *facilityapp.CleaningService
}

// NewCleaningHandler creates a new CleaningHandler
func NewCleaningHandler(cleaningService *facilityapp.CleaningService) *CleaningHandler {
	return &CleaningHandler{
		cleaningService: cleaningService,
	}
}

// CreateCleaningRequest represents a request to schedule a cleaning slot
type CreateCleaningRequest struct {
	Area          string `json:"area" binding:"required,min=1,max=255"`
	AssignedTo    string `json:"assigned_to" binding:"max=200"`
	ScheduledDate string `json:"scheduled_date" binding:"required,datetime=2006-01-02"`
	Notes         string `json:"notes" binding:"max=2000"`
}

// UpdateCleaningRequest represents a request to update a cleaning slot.
// Omitted fields stay unchanged.
type UpdateCleaningRequest struct {
	Area          *string `json:"area" binding:"omitempty,min=1,max=255"`
	AssignedTo    *string `json:"assigned_to" binding:"omitempty,max=200"`
	ScheduledDate *string `json:"scheduled_date" binding:"omitempty,datetime=2006-01-02"`
	Status        *string `json:"status" binding:"omitempty,oneof=pending completed"`
	Notes         *string `json:"notes" binding:"omitempty,max=2000"`
}

// CleaningResponse represents a cleaning slot in responses
type CleaningResponse struct {
	ID              string `json:"id"`
	Area            string `json:"area"`
	AssignedTo      string `json:"assigned_to"`
	ScheduledDate   string `json:"scheduled_date"`
	Status          string `json:"status"`
	Notes           string `json:"notes"`
	CalendarEventID string `json:"calendar_event_id,omitempty"`
}

func toCleaningResponse(result *facilityapp.CleaningResult) CleaningResponse {
	return CleaningResponse{
		ID:              result.ID.String(),
		Area:            result.Area,
		AssignedTo:      result.AssignedTo,
		ScheduledDate:   result.ScheduledDate.Format("2006-01-02"),
		Status:          string(result.Status),
		Notes:           result.Notes,
		CalendarEventID: result.CalendarEventID,
	}
}

// Create godoc
// @Summary      Schedule a cleaning slot
// @Description  Create a cleaning assignment, synced to the external calendar when configured
// @Tags         cleaning
// @Accept       json
// @Produce      json
// @Param        request body CreateCleaningRequest true "Cleaning slot request"
// @Success      201 {object} dto.Response{data=CleaningResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /cleaning-schedules [post]
func (h *CleaningHandler) Create(c *gin.Context) {
	var req CreateCleaningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	scheduledDate, err := time.Parse("2006-01-02", req.ScheduledDate)
	if err != nil {
		h.BadRequest(c, "Invalid scheduled_date format")
		return
	}

	result, err := h.cleaningService.Create(c.Request.Context(), facilityapp.CreateCleaningInput{
		Area:          req.Area,
		AssignedTo:    req.AssignedTo,
		ScheduledDate: scheduledDate,
		Notes:         req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toCleaningResponse(result))
}

// Update godoc
// @Summary      Update a cleaning slot
// @Tags         cleaning
// @Accept       json
// @Produce      json
// @Param        id path string true "Schedule ID"
// @Param        request body UpdateCleaningRequest true "Update request"
// @Success      200 {object} dto.Response{data=CleaningResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /cleaning-schedules/{id} [put]
func (h *CleaningHandler) Update(c *gin.Context) {
	scheduleID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateCleaningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := facilityapp.UpdateCleaningInput{
		ScheduleID: scheduleID,
		Area:       req.Area,
		AssignedTo: req.AssignedTo,
		Notes:      req.Notes,
	}
	if req.ScheduledDate != nil {
		scheduledDate, err := time.Parse("2006-01-02", *req.ScheduledDate)
		if err != nil {
			h.BadRequest(c, "Invalid scheduled_date format")
			return
		}
		input.ScheduledDate = &scheduledDate
	}
	if req.Status != nil {
		status := facility.ScheduleStatus(*req.Status)
		input.Status = &status
	}

	result, err := h.cleaningService.Update(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toCleaningResponse(result))
}

// Get godoc
// @Summary      Get a cleaning slot
// @Tags         cleaning
// @Produce      json
// @Param        id path string true "Schedule ID"
// @Success      200 {object} dto.Response{data=CleaningResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /cleaning-schedules/{id} [get]
func (h *CleaningHandler) Get(c *gin.Context) {
	scheduleID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.cleaningService.Get(c.Request.Context(), scheduleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toCleaningResponse(result))
}

// List godoc
// @Summary      List cleaning slots
// @Description  List all slots, or slots in a date range when from and to are given
// @Tags         cleaning
// @Produce      json
// @Param        from query string false "Range start in 2006-01-02 format"
// @Param        to query string false "Range end in 2006-01-02 format"
// @Success      200 {object} dto.Response{data=[]CleaningResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /cleaning-schedules [get]
func (h *CleaningHandler) List(c *gin.Context) {
	fromRaw := c.Query("from")
	toRaw := c.Query("to")

	var (
		results []facilityapp.CleaningResult
		err     error
	)
	if fromRaw != "" || toRaw != "" {
		if fromRaw == "" || toRaw == "" {
			h.BadRequest(c, "Both from and to are required for a date range")
			return
		}
		from, parseErr := time.Parse("2006-01-02", fromRaw)
		if parseErr != nil {
			h.BadRequest(c, "Invalid from date format")
			return
		}
		to, parseErr := time.Parse("2006-01-02", toRaw)
		if parseErr != nil {
			h.BadRequest(c, "Invalid to date format")
			return
		}
		results, err = h.cleaningService.ListByDateRange(c.Request.Context(), from, to)
	} else {
		results, err = h.cleaningService.List(c.Request.Context())
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}

	schedules := make([]CleaningResponse, len(results))
	for i := range results {
		schedules[i] = toCleaningResponse(&results[i])
	}

	h.Success(c, schedules)
}

// Delete godoc
// @Summary      Delete a cleaning slot
// @Description  Remove a slot along with its linked calendar event when present
// @Tags         cleaning
// @Produce      json
// @Param        id path string true "Schedule ID"
// @Success      204 "No Content"
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /cleaning-schedules/{id} [delete]
func (h *CleaningHandler) Delete(c *gin.Context) {
	scheduleID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.cleaningService.Delete(c.Request.Context(), scheduleID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
