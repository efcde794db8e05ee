package handler

import (
	"time"

	facilityapp "github.com/dormsync/backend/internal/application/facility"
	"github.com/dormsync/backend/internal/domain/facility"
	"github.com/gin-gonic/gin"
)

// AnnouncementHandler handles announcement endpoints
type AnnouncementHandler struct {
	BaseHandler
	announcementService *facilityapp.AnnouncementService
}

// NewAnnouncementHandler creates a new AnnouncementHandler
func NewAnnouncementHandler(announcementService *facilityapp.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{
		announcementService: announcementService,
	}
}

// CreateAnnouncementRequest represents a request to post an announcement.
// Urgent priority fans out push notifications to enrolled devices.
type CreateAnnouncementRequest struct {
	Title    string `json:"title" binding:"required,min=1,max=255"`
	Content  string `json:"content" binding:"required,max=10000"`
	Priority string `json:"priority" binding:"omitempty,oneof=normal important urgent"`
}

// UpdateAnnouncementRequest represents a request to edit an announcement.
// Omitted fields stay unchanged. Raising priority to urgent on edit does
// not re-notify.
type UpdateAnnouncementRequest struct {
	Title    *string `json:"title" binding:"omitempty,min=1,max=255"`
	Content  *string `json:"content" binding:"omitempty,max=10000"`
	Priority *string `json:"priority" binding:"omitempty,oneof=normal important urgent"`
}

// AnnouncementResponse represents an announcement in responses
type AnnouncementResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Priority  string    `json:"priority"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func toAnnouncementResponse(result *facilityapp.AnnouncementResult) AnnouncementResponse {
	return AnnouncementResponse{
		ID:        result.ID.String(),
		Title:     result.Title,
		Content:   result.Content,
		Priority:  string(result.Priority),
		CreatedBy: result.CreatedBy.String(),
		CreatedAt: result.CreatedAt,
	}
}

// Create godoc
// @Summary      Post an announcement
// @Tags         announcements
// @Accept       json
// @Produce      json
// @Param        request body CreateAnnouncementRequest true "Announcement"
// @Success      201 {object} dto.Response{data=AnnouncementResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /announcements [post]
func (h *AnnouncementHandler) Create(c *gin.Context) {
	userID, err := h.getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	priority := facility.PriorityNormal
	if req.Priority != "" {
		priority = facility.Priority(req.Priority)
	}

	result, err := h.announcementService.Create(c.Request.Context(), facilityapp.CreateAnnouncementInput{
		Title:     req.Title,
		Content:   req.Content,
		Priority:  priority,
		CreatedBy: userID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toAnnouncementResponse(result))
}

// Update godoc
// @Summary      Edit an announcement
// @Tags         announcements
// @Accept       json
// @Produce      json
// @Param        id path string true "Announcement ID"
// @Param        request body UpdateAnnouncementRequest true "Announcement edit"
// @Success      200 {object} dto.Response{data=AnnouncementResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /announcements/{id} [put]
func (h *AnnouncementHandler) Update(c *gin.Context) {
	announcementID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := facilityapp.UpdateAnnouncementInput{
		AnnouncementID: announcementID,
		Title:          req.Title,
		Content:        req.Content,
	}
	if req.Priority != nil {
		priority := facility.Priority(*req.Priority)
		input.Priority = &priority
	}

	result, err := h.announcementService.Update(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toAnnouncementResponse(result))
}

// Get godoc
// @Summary      Get an announcement
// @Tags         announcements
// @Produce      json
// @Param        id path string true "Announcement ID"
// @Success      200 {object} dto.Response{data=AnnouncementResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /announcements/{id} [get]
func (h *AnnouncementHandler) Get(c *gin.Context) {
	announcementID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.announcementService.Get(c.Request.Context(), announcementID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toAnnouncementResponse(result))
}

// List godoc
// @Summary      List announcements
// @Description  List announcements newest first
// @Tags         announcements
// @Produce      json
// @Success      200 {object} dto.Response{data=[]AnnouncementResponse}
// @Security     BearerAuth
// @Router       /announcements [get]
func (h *AnnouncementHandler) List(c *gin.Context) {
	results, err := h.announcementService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	announcements := make([]AnnouncementResponse, len(results))
	for i := range results {
		announcements[i] = toAnnouncementResponse(&results[i])
	}

	h.Success(c, announcements)
}

// Delete godoc
// @Summary      Delete an announcement
// @Tags         announcements
// @Produce      json
// @Param        id path string true "Announcement ID"
// @Success      204 "No Content"
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /announcements/{id} [delete]
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	announcementID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.announcementService.Delete(c.Request.Context(), announcementID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
