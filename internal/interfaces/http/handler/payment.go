package handler

import (
	"errors"
	"time"

	billingapp "github.com/dormsync/backend/internal/application/billing"
	"github.com/dormsync/backend/internal/domain/billing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// maxReceiptSize caps receipt uploads at 10 MB
const maxReceiptSize = 10 << 20

// PaymentHandler handles payment tracking endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *billingapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *billingapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// CreatePaymentRequest represents a request to record a payment obligation.
// Amount is a decimal string. Dates use the 2006-01-02 format.
type CreatePaymentRequest struct {
	StudentID string `json:"student_id" binding:"required,uuid"`
	Amount    string `json:"amount" binding:"required"`
	Type      string `json:"type" binding:"required,min=1,max=100"`
	Status    string `json:"status" binding:"omitempty,oneof=pending paid overdue verified"`
	DueDate   string `json:"due_date" binding:"required,datetime=2006-01-02"`
	PaidDate  string `json:"paid_date" binding:"omitempty,datetime=2006-01-02"`
	Notes     string `json:"notes" binding:"max=2000"`
}

func (r CreatePaymentRequest) toInput() (billingapp.CreatePaymentInput, error) {
	var input billingapp.CreatePaymentInput

	studentID, err := uuid.Parse(r.StudentID)
	if err != nil {
		return input, errors.New("invalid student_id format")
	}
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return input, errors.New("invalid amount format")
	}
	dueDate, err := time.Parse("2006-01-02", r.DueDate)
	if err != nil {
		return input, errors.New("invalid due_date format")
	}

	input = billingapp.CreatePaymentInput{
		StudentID: studentID,
		Amount:    amount,
		Type:      r.Type,
		Status:    billing.PaymentStatus(r.Status),
		DueDate:   dueDate,
		Notes:     r.Notes,
	}
	if r.Status == "" {
		input.Status = billing.PaymentStatusPending
	}
	if r.PaidDate != "" {
		paidDate, err := time.Parse("2006-01-02", r.PaidDate)
		if err != nil {
			return input, errors.New("invalid paid_date format")
		}
		input.PaidDate = &paidDate
	}
	return input, nil
}

// CreatePaymentsBulkRequest represents a batch of payments created together
type CreatePaymentsBulkRequest struct {
	Payments []CreatePaymentRequest `json:"payments" binding:"required,min=1,max=500,dive"`
}

// UpdatePaymentRequest represents a request to update a payment.
// Omitted fields stay unchanged.
type UpdatePaymentRequest struct {
	Amount  *string `json:"amount"`
	Type    *string `json:"type" binding:"omitempty,min=1,max=100"`
	Status  *string `json:"status" binding:"omitempty,oneof=pending paid overdue verified"`
	DueDate *string `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	Notes   *string `json:"notes" binding:"omitempty,max=2000"`
}

// PaymentResponse represents a payment in responses
type PaymentResponse struct {
	ID         string     `json:"id"`
	StudentID  string     `json:"student_id"`
	Amount     string     `json:"amount"`
	Type       string     `json:"type"`
	Status     string     `json:"status"`
	DueDate    string     `json:"due_date"`
	PaidDate   *time.Time `json:"paid_date"`
	Notes      string     `json:"notes"`
	ReceiptURL string     `json:"receipt_url,omitempty"`
}

func toPaymentResponse(result *billingapp.PaymentResult) PaymentResponse {
	return PaymentResponse{
		ID:         result.ID.String(),
		StudentID:  result.StudentID.String(),
		Amount:     result.Amount.String(),
		Type:       result.Type,
		Status:     string(result.Status),
		DueDate:    result.DueDate.Format("2006-01-02"),
		PaidDate:   result.PaidDate,
		Notes:      result.Notes,
		ReceiptURL: result.ReceiptURL,
	}
}

// Create godoc
// @Summary      Create a payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body CreatePaymentRequest true "Payment creation request"
// @Success      201 {object} dto.Response{data=PaymentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /payments [post]
func (h *PaymentHandler) Create(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input, err := req.toInput()
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.paymentService.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toPaymentResponse(result))
}

// CreateBulk godoc
// @Summary      Create payments in bulk
// @Description  Record the same or different obligations for many students in one call
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body CreatePaymentsBulkRequest true "Bulk creation request"
// @Success      201 {object} dto.Response{data=[]PaymentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /payments/bulk [post]
func (h *PaymentHandler) CreateBulk(c *gin.Context) {
	var req CreatePaymentsBulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	inputs := make([]billingapp.CreatePaymentInput, len(req.Payments))
	for i, p := range req.Payments {
		input, err := p.toInput()
		if err != nil {
			h.BadRequest(c, err.Error())
			return
		}
		inputs[i] = input
	}

	results, err := h.paymentService.CreateBulk(c.Request.Context(), inputs)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	payments := make([]PaymentResponse, len(results))
	for i := range results {
		payments[i] = toPaymentResponse(&results[i])
	}

	h.Created(c, payments)
}

// Update godoc
// @Summary      Update a payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id path string true "Payment ID"
// @Param        request body UpdatePaymentRequest true "Payment update request"
// @Success      200 {object} dto.Response{data=PaymentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /payments/{id} [put]
func (h *PaymentHandler) Update(c *gin.Context) {
	paymentID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := billingapp.UpdatePaymentInput{
		PaymentID: paymentID,
		Type:      req.Type,
		Notes:     req.Notes,
	}
	if req.Amount != nil {
		amount, err := decimal.NewFromString(*req.Amount)
		if err != nil {
			h.BadRequest(c, "Invalid amount format")
			return
		}
		input.Amount = &amount
	}
	if req.Status != nil {
		status := billing.PaymentStatus(*req.Status)
		input.Status = &status
	}
	if req.DueDate != nil {
		dueDate, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			h.BadRequest(c, "Invalid due_date format")
			return
		}
		input.DueDate = &dueDate
	}

	result, err := h.paymentService.Update(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPaymentResponse(result))
}

// UploadReceipt godoc
// @Summary      Upload a payment receipt
// @Description  Attach a receipt image or document to a payment via multipart upload
// @Tags         payments
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path string true "Payment ID"
// @Param        file formData file true "Receipt file"
// @Success      200 {object} dto.Response{data=PaymentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /payments/{id}/receipt [post]
func (h *PaymentHandler) UploadReceipt(c *gin.Context) {
	paymentID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Missing receipt file")
		return
	}
	if fileHeader.Size > maxReceiptSize {
		h.BadRequest(c, "Receipt file exceeds the 10MB limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Failed to read receipt file")
		return
	}
	defer file.Close()

	result, err := h.paymentService.UploadReceipt(c.Request.Context(), paymentID, file,
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPaymentResponse(result))
}

// Get godoc
// @Summary      Get a payment
// @Tags         payments
// @Produce      json
// @Param        id path string true "Payment ID"
// @Success      200 {object} dto.Response{data=PaymentResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /payments/{id} [get]
func (h *PaymentHandler) Get(c *gin.Context) {
	paymentID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.paymentService.Get(c.Request.Context(), paymentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPaymentResponse(result))
}

// List godoc
// @Summary      List payments
// @Tags         payments
// @Produce      json
// @Param        student_id query string false "Filter by student user ID"
// @Success      200 {object} dto.Response{data=[]PaymentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	var studentID *uuid.UUID
	if raw := c.Query("student_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid student_id format")
			return
		}
		studentID = &parsed
	}

	results, err := h.paymentService.List(c.Request.Context(), studentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	payments := make([]PaymentResponse, len(results))
	for i := range results {
		payments[i] = toPaymentResponse(&results[i])
	}

	h.Success(c, payments)
}

// Delete godoc
// @Summary      Delete a payment
// @Tags         payments
// @Produce      json
// @Param        id path string true "Payment ID"
// @Success      204 "No Content"
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /payments/{id} [delete]
func (h *PaymentHandler) Delete(c *gin.Context) {
	paymentID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.paymentService.Delete(c.Request.Context(), paymentID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
