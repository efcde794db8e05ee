package handler

import (
	housingapp "github.com/dormsync/backend/internal/application/housing"
	"github.com/gin-gonic/gin"
)

// RoomHandler handles room management endpoints
type RoomHandler struct {
	BaseHandler
	roomService *housingapp.RoomService
}

// NewRoomHandler creates a new RoomHandler
func NewRoomHandler(roomService *housingapp.RoomService) *RoomHandler {
	return &RoomHandler{
		roomService: roomService,
	}
}

// CreateRoomRequest represents a request to create a room
type CreateRoomRequest struct {
	Code     string `json:"code" binding:"required,min=1,max=20"`
	Capacity int    `json:"capacity" binding:"required,min=1,max=20"`
}

// UpdateRoomRequest represents a request to update a room.
// Omitted fields stay unchanged.
type UpdateRoomRequest struct {
	Code     *string `json:"code" binding:"omitempty,min=1,max=20"`
	Capacity *int    `json:"capacity" binding:"omitempty,min=1,max=20"`
}

// RoomResponse represents a room with its current occupancy
type RoomResponse struct {
	ID            string `json:"id"`
	Code          string `json:"code"`
	Capacity      int    `json:"capacity"`
	OccupantCount int64  `json:"occupant_count"`
}

func toRoomResponse(result *housingapp.RoomResult) RoomResponse {
	return RoomResponse{
		ID:            result.ID.String(),
		Code:          result.Code,
		Capacity:      result.Capacity,
		OccupantCount: result.OccupantCount,
	}
}

// Create godoc
// @Summary      Create a room
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        request body CreateRoomRequest true "Room creation request"
// @Success      201 {object} dto.Response{data=RoomResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /rooms [post]
func (h *RoomHandler) Create(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.roomService.Create(c.Request.Context(), housingapp.CreateRoomInput{
		Code:     req.Code,
		Capacity: req.Capacity,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toRoomResponse(result))
}

// Update godoc
// @Summary      Update a room
// @Description  Change a room's code or capacity. Capacity cannot drop below current occupancy.
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        id path string true "Room ID"
// @Param        request body UpdateRoomRequest true "Room update request"
// @Success      200 {object} dto.Response{data=RoomResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /rooms/{id} [put]
func (h *RoomHandler) Update(c *gin.Context) {
	roomID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.roomService.Update(c.Request.Context(), housingapp.UpdateRoomInput{
		RoomID:   roomID,
		Code:     req.Code,
		Capacity: req.Capacity,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toRoomResponse(result))
}

// Get godoc
// @Summary      Get a room
// @Tags         rooms
// @Produce      json
// @Param        id path string true "Room ID"
// @Success      200 {object} dto.Response{data=RoomResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /rooms/{id} [get]
func (h *RoomHandler) Get(c *gin.Context) {
	roomID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.roomService.Get(c.Request.Context(), roomID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toRoomResponse(result))
}

// List godoc
// @Summary      List rooms
// @Description  List all rooms ordered by code with occupant counts
// @Tags         rooms
// @Produce      json
// @Success      200 {object} dto.Response{data=[]RoomResponse}
// @Security     BearerAuth
// @Router       /rooms [get]
func (h *RoomHandler) List(c *gin.Context) {
	results, err := h.roomService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	rooms := make([]RoomResponse, len(results))
	for i := range results {
		rooms[i] = toRoomResponse(&results[i])
	}

	h.Success(c, rooms)
}

// Delete godoc
// @Summary      Delete a room
// @Description  Delete an empty room. Occupied rooms are rejected.
// @Tags         rooms
// @Produce      json
// @Param        id path string true "Room ID"
// @Success      204 "No Content"
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /rooms/{id} [delete]
func (h *RoomHandler) Delete(c *gin.Context) {
	roomID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.roomService.Delete(c.Request.Context(), roomID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
