package handler

import (
	"time"

	facilityapp "github.com/dormsync/backend/internal/application/facility"
	"github.com/dormsync/backend/internal/domain/facility"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxAttachmentSize caps maintenance attachments at 10 MB
const maxAttachmentSize = 10 << 20

// MaintenanceHandler handles maintenance request endpoints
type MaintenanceHandler struct {
	BaseHandler
	maintenanceService *facilityapp.MaintenanceService
}

// NewMaintenanceHandler creates a new MaintenanceHandler
func NewMaintenanceHandler(maintenanceService *facilityapp.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{
		maintenanceService: maintenanceService,
	}
}

// CreateMaintenanceRequest represents a request to file a maintenance issue.
// StudentID is optional for admins filing on a student's behalf; students
// file for themselves.
type CreateMaintenanceRequest struct {
	StudentID   *string `json:"student_id" binding:"omitempty,uuid"`
	Title       string  `json:"title" binding:"required,min=1,max=255"`
	Description string  `json:"description" binding:"max=5000"`
	Urgency     string  `json:"urgency" binding:"omitempty,oneof=low medium high"`
}

// UpdateMaintenanceRequest represents an admin update to a request.
// Omitted fields stay unchanged.
type UpdateMaintenanceRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
	Urgency     *string `json:"urgency" binding:"omitempty,oneof=low medium high"`
	Status      *string `json:"status" binding:"omitempty,oneof=pending in-progress resolved"`
	RoomNumber  *string `json:"room_number" binding:"omitempty,max=20"`
}

// MaintenanceResponse represents a maintenance request in responses
type MaintenanceResponse struct {
	ID            string     `json:"id"`
	StudentID     string     `json:"student_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Urgency       string     `json:"urgency"`
	Status        string     `json:"status"`
	RoomNumber    string     `json:"room_number"`
	AttachmentURL string     `json:"attachment_url,omitempty"`
	ResolvedAt    *time.Time `json:"resolved_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

func toMaintenanceResponse(result *facilityapp.MaintenanceResult) MaintenanceResponse {
	return MaintenanceResponse{
		ID:            result.ID.String(),
		StudentID:     result.StudentID.String(),
		Title:         result.Title,
		Description:   result.Description,
		Urgency:       string(result.Urgency),
		Status:        string(result.Status),
		RoomNumber:    result.RoomNumber,
		AttachmentURL: result.AttachmentURL,
		ResolvedAt:    result.ResolvedAt,
		CreatedAt:     result.CreatedAt,
	}
}

// Create godoc
// @Summary      File a maintenance request
// @Description  File an issue with the filing student's room number snapshotted at creation
// @Tags         maintenance
// @Accept       json
// @Produce      json
// @Param        request body CreateMaintenanceRequest true "Maintenance request"
// @Success      201 {object} dto.Response{data=MaintenanceResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /maintenance-requests [post]
func (h *MaintenanceHandler) Create(c *gin.Context) {
	var req CreateMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	studentID, err := h.getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	if req.StudentID != nil {
		parsed, err := uuid.Parse(*req.StudentID)
		if err != nil {
			h.BadRequest(c, "Invalid student_id format")
			return
		}
		studentID = parsed
	}

	urgency := facility.UrgencyMedium
	if req.Urgency != "" {
		urgency = facility.Urgency(req.Urgency)
	}

	result, err := h.maintenanceService.Create(c.Request.Context(), facilityapp.CreateMaintenanceInput{
		StudentID:   studentID,
		Title:       req.Title,
		Description: req.Description,
		Urgency:     urgency,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toMaintenanceResponse(result))
}

// Update godoc
// @Summary      Update a maintenance request
// @Description  Admin update of status, urgency or details. Resolving stamps the resolution time.
// @Tags         maintenance
// @Accept       json
// @Produce      json
// @Param        id path string true "Request ID"
// @Param        request body UpdateMaintenanceRequest true "Update request"
// @Success      200 {object} dto.Response{data=MaintenanceResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /maintenance-requests/{id} [put]
func (h *MaintenanceHandler) Update(c *gin.Context) {
	requestID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := facilityapp.UpdateMaintenanceInput{
		RequestID:   requestID,
		Title:       req.Title,
		Description: req.Description,
		RoomNumber:  req.RoomNumber,
	}
	if req.Urgency != nil {
		urgency := facility.Urgency(*req.Urgency)
		input.Urgency = &urgency
	}
	if req.Status != nil {
		status := facility.RequestStatus(*req.Status)
		input.Status = &status
	}

	result, err := h.maintenanceService.Update(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toMaintenanceResponse(result))
}

// UploadAttachment godoc
// @Summary      Upload a request attachment
// @Description  Attach a photo or document to a maintenance request via multipart upload
// @Tags         maintenance
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path string true "Request ID"
// @Param        file formData file true "Attachment file"
// @Success      200 {object} dto.Response{data=MaintenanceResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /maintenance-requests/{id}/attachment [post]
func (h *MaintenanceHandler) UploadAttachment(c *gin.Context) {
	requestID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Missing attachment file")
		return
	}
	if fileHeader.Size > maxAttachmentSize {
		h.BadRequest(c, "Attachment exceeds the 10MB limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Failed to read attachment file")
		return
	}
	defer file.Close()

	result, err := h.maintenanceService.UploadAttachment(c.Request.Context(), requestID, file,
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toMaintenanceResponse(result))
}

// Get godoc
// @Summary      Get a maintenance request
// @Tags         maintenance
// @Produce      json
// @Param        id path string true "Request ID"
// @Success      200 {object} dto.Response{data=MaintenanceResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /maintenance-requests/{id} [get]
func (h *MaintenanceHandler) Get(c *gin.Context) {
	requestID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.maintenanceService.Get(c.Request.Context(), requestID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toMaintenanceResponse(result))
}

// List godoc
// @Summary      List maintenance requests
// @Tags         maintenance
// @Produce      json
// @Param        student_id query string false "Filter by student user ID"
// @Param        status query string false "Filter by status" Enums(pending, in-progress, resolved)
// @Param        urgency query string false "Filter by urgency" Enums(low, medium, high)
// @Success      200 {object} dto.Response{data=[]MaintenanceResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /maintenance-requests [get]
func (h *MaintenanceHandler) List(c *gin.Context) {
	var filter facility.MaintenanceRequestFilter
	if raw := c.Query("student_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid student_id format")
			return
		}
		filter.StudentID = &parsed
	}
	if raw := c.Query("status"); raw != "" {
		status := facility.RequestStatus(raw)
		filter.Status = &status
	}
	if raw := c.Query("urgency"); raw != "" {
		urgency := facility.Urgency(raw)
		filter.Urgency = &urgency
	}

	results, err := h.maintenanceService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	requests := make([]MaintenanceResponse, len(results))
	for i := range results {
		requests[i] = toMaintenanceResponse(&results[i])
	}

	h.Success(c, requests)
}

// Delete godoc
// @Summary      Delete a maintenance request
// @Tags         maintenance
// @Produce      json
// @Param        id path string true "Request ID"
// @Success      204 "No Content"
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /maintenance-requests/{id} [delete]
func (h *MaintenanceHandler) Delete(c *gin.Context) {
	requestID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.maintenanceService.Delete(c.Request.Context(), requestID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
