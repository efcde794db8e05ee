package handler

import (
	identityapp "github.com/dormsync/backend/internal/application/identity"
	"github.com/dormsync/backend/internal/domain/identity"
	"github.com/dormsync/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// StudentHandler handles student management endpoints
type StudentHandler struct {
	BaseHandler
	studentService *identityapp.StudentService
}

// NewStudentHandler creates a new StudentHandler
func NewStudentHandler(studentService *identityapp.StudentService) *StudentHandler {
	return &StudentHandler{
		studentService: studentService,
	}
}

// Create godoc
// @Summary      Enroll a student
// @Description  Create a student account with profile and optional room assignment
// @Tags         students
// @Accept       json
// @Produce      json
// @Param        request body CreateStudentRequest true "Student enrollment request"
// @Success      201 {object} dto.Response{data=StudentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var req CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input, err := req.toInput()
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.studentService.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toStudentResponse(result))
}

// Update godoc
// @Summary      Update a student
// @Description  Update account and profile fields, including room reassignment
// @Tags         students
// @Accept       json
// @Produce      json
// @Param        id path string true "Student user ID"
// @Param        request body UpdateStudentRequest true "Student update request"
// @Success      200 {object} dto.Response{data=StudentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /students/{id} [put]
func (h *StudentHandler) Update(c *gin.Context) {
	userID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input, err := req.toInput(userID)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.studentService.Update(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toStudentResponse(result))
}

// Get godoc
// @Summary      Get a student
// @Tags         students
// @Produce      json
// @Param        id path string true "Student user ID"
// @Success      200 {object} dto.Response{data=StudentResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /students/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	userID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.studentService.Get(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toStudentResponse(result))
}

// List godoc
// @Summary      List students
// @Description  List students with keyword search, status filter and pagination
// @Tags         students
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        search query string false "Search by name, email or student identifier"
// @Param        status query string false "Profile status filter" Enums(active, inactive)
// @Success      200 {object} dto.Response{data=[]StudentResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	req.Normalize()

	input := identityapp.ListStudentsInput{
		Keyword:  req.Search,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if raw := c.Query("status"); raw != "" {
		status := identity.ProfileStatus(raw)
		if status != identity.ProfileStatusActive && status != identity.ProfileStatusInactive {
			h.BadRequest(c, "Invalid status filter")
			return
		}
		input.Status = &status
	}

	result, err := h.studentService.List(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	students := make([]StudentResponse, len(result.Items))
	for i := range result.Items {
		students[i] = toStudentResponse(&result.Items[i])
	}

	h.SuccessWithMeta(c, students, result.Total, result.Page, result.PageSize)
}

// Delete godoc
// @Summary      Delete a student
// @Description  Delete a student account with its profile and history
// @Tags         students
// @Produce      json
// @Param        id path string true "Student user ID"
// @Success      204 "No Content"
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /students/{id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	userID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.studentService.Delete(c.Request.Context(), userID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterPushToken godoc
// @Summary      Register a push token
// @Description  Store the caller's device token for urgent notifications
// @Tags         students
// @Accept       json
// @Produce      json
// @Param        request body RegisterPushTokenRequest true "Push token"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /students/push-token [post]
func (h *StudentHandler) RegisterPushToken(c *gin.Context) {
	userID, err := h.getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req RegisterPushTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.studentService.RegisterPushToken(c.Request.Context(), userID, req.Token); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Push token registered"})
}
