package billing

import (
	"context"
	"io"
	"time"

	"github.com/dormsync/backend/internal/domain/billing"
	"github.com/dormsync/backend/internal/domain/identity"
	"github.com/dormsync/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ObjectStorage stores uploaded receipt files. Implemented by the
// infrastructure storage layer.
type ObjectStorage interface {
	// Upload stores content under the given category and returns the
	// storage key and public URL
	Upload(ctx context.Context, content io.Reader, filename, contentType, category string) (storageID, fileURL string, err error)
}

const receiptCategory = "receipts"

// PaymentService handles payment lifecycle operations
type PaymentService struct {
	paymentRepo    billing.PaymentRepository
	userRepo       identity.UserRepository
	storage        ObjectStorage
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo billing.PaymentRepository,
	userRepo identity.UserRepository,
	storage ObjectStorage,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		storage:     storage,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *PaymentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreatePaymentInput contains the input for creating one payment.
// An empty Status defaults to pending. PaidDate is honored only when the
// status settles the payment; otherwise the paid-date rule derives it.
type CreatePaymentInput struct {
	StudentID uuid.UUID
	Amount    decimal.Decimal
	Type      string
	Status    billing.PaymentStatus
	DueDate   time.Time
	PaidDate  *time.Time
	Notes     string
}

// UpdatePaymentInput contains the input for updating a payment.
// Nil pointers leave the corresponding field untouched.
type UpdatePaymentInput struct {
	PaymentID uuid.UUID
	Amount    *decimal.Decimal
	Type      *string
	Status    *billing.PaymentStatus
	DueDate   *time.Time
	Notes     *string
}

// PaymentResult is a payment response
type PaymentResult struct {
	ID         uuid.UUID
	StudentID  uuid.UUID
	Amount     decimal.Decimal
	Type       string
	Status     billing.PaymentStatus
	DueDate    time.Time
	PaidDate   *time.Time
	Notes      string
	ReceiptURL string
}

// Create creates a single payment
func (s *PaymentService) Create(ctx context.Context, input CreatePaymentInput) (*PaymentResult, error) {
	payment, err := s.buildPayment(ctx, input)
	if err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	s.publishAndClear(ctx, payment)

	s.logger.Info("Payment created",
		zap.String("payment_id", payment.ID.String()),
		zap.String("student_id", payment.StudentID.String()),
		zap.String("status", string(payment.Status)))

	result := toPaymentResult(payment)
	return &result, nil
}

// CreateBulk creates payments for several students in one transaction.
// Any invalid entry rejects the whole batch; no partial writes.
func (s *PaymentService) CreateBulk(ctx context.Context, inputs []CreatePaymentInput) ([]PaymentResult, error) {
	if len(inputs) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Bulk creation requires at least one entry")
	}

	payments := make([]*billing.Payment, len(inputs))
	for i, input := range inputs {
		payment, err := s.buildPayment(ctx, input)
		if err != nil {
			return nil, err
		}
		payments[i] = payment
	}

	if err := s.paymentRepo.CreateBatch(ctx, payments); err != nil {
		return nil, err
	}

	results := make([]PaymentResult, len(payments))
	for i, payment := range payments {
		s.publishAndClear(ctx, payment)
		results[i] = toPaymentResult(payment)
	}

	s.logger.Info("Bulk payments created", zap.Int("count", len(payments)))
	return results, nil
}

func (s *PaymentService) buildPayment(ctx context.Context, input CreatePaymentInput) (*billing.Payment, error) {
	user, err := s.userRepo.FindByID(ctx, input.StudentID)
	if err != nil {
		return nil, err
	}
	if !user.IsStudent() {
		return nil, shared.ErrNotFound
	}

	status := input.Status
	if status == "" {
		status = billing.PaymentStatusPending
	}

	payment, err := billing.NewPayment(input.StudentID, input.Amount, input.Type, status, input.DueDate, input.Notes)
	if err != nil {
		return nil, err
	}

	// a caller-supplied paid date wins over the stamped one, but only on
	// a settled payment
	if input.PaidDate != nil && payment.PaidDate != nil {
		payment.PaidDate = input.PaidDate
	}

	return payment, nil
}

// Update applies field changes; status transitions run the paid-date
// rule and fire the one-shot verified notification
func (s *PaymentService) Update(ctx context.Context, input UpdatePaymentInput) (*PaymentResult, error) {
	payment, err := s.paymentRepo.FindByID(ctx, input.PaymentID)
	if err != nil {
		return nil, err
	}

	if input.Amount != nil {
		if err := payment.SetAmount(*input.Amount); err != nil {
			return nil, err
		}
	}
	if input.Type != nil {
		if err := payment.SetType(*input.Type); err != nil {
			return nil, err
		}
	}
	if input.DueDate != nil {
		if err := payment.SetDueDate(*input.DueDate); err != nil {
			return nil, err
		}
	}
	if input.Notes != nil {
		payment.SetNotes(*input.Notes)
	}
	if input.Status != nil {
		if err := payment.ChangeStatus(*input.Status); err != nil {
			return nil, err
		}
	}

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}

	s.publishAndClear(ctx, payment)

	s.logger.Info("Payment updated",
		zap.String("payment_id", payment.ID.String()),
		zap.String("status", string(payment.Status)))

	result := toPaymentResult(payment)
	return &result, nil
}

// UploadReceipt stores a receipt file and attaches it to the payment.
// Storage failures surface as UPLOAD_FAILED, distinct from validation.
func (s *PaymentService) UploadReceipt(ctx context.Context, paymentID uuid.UUID, content io.Reader, filename, contentType string) (*PaymentResult, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	storageID, fileURL, err := s.storage.Upload(ctx, content, filename, contentType, receiptCategory)
	if err != nil {
		s.logger.Error("Receipt upload failed",
			zap.String("payment_id", paymentID.String()),
			zap.Error(err))
		return nil, shared.ErrUploadFailed
	}

	payment.AttachReceipt(storageID, fileURL)
	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}

	result := toPaymentResult(payment)
	return &result, nil
}

// Get returns a single payment
func (s *PaymentService) Get(ctx context.Context, paymentID uuid.UUID) (*PaymentResult, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	result := toPaymentResult(payment)
	return &result, nil
}

// List returns payments newest first, optionally filtered by student
func (s *PaymentService) List(ctx context.Context, studentID *uuid.UUID) ([]PaymentResult, error) {
	payments, err := s.paymentRepo.FindAll(ctx, studentID)
	if err != nil {
		return nil, err
	}

	results := make([]PaymentResult, len(payments))
	for i, p := range payments {
		results[i] = toPaymentResult(p)
	}
	return results, nil
}

// Delete removes a payment
func (s *PaymentService) Delete(ctx context.Context, paymentID uuid.UUID) error {
	if _, err := s.paymentRepo.FindByID(ctx, paymentID); err != nil {
		return err
	}
	return s.paymentRepo.Delete(ctx, paymentID)
}

func (s *PaymentService) publishAndClear(ctx context.Context, payment *billing.Payment) {
	events := payment.GetDomainEvents()
	payment.ClearDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	// Errors are logged by the event bus, not propagated
	_ = s.eventPublisher.Publish(ctx, events...)
}

func toPaymentResult(payment *billing.Payment) PaymentResult {
	return PaymentResult{
		ID:         payment.ID,
		StudentID:  payment.StudentID,
		Amount:     payment.Amount,
		Type:       payment.Type,
		Status:     payment.Status,
		DueDate:    payment.DueDate,
		PaidDate:   payment.PaidDate,
		Notes:      payment.Notes,
		ReceiptURL: payment.ReceiptURL,
	}
}
