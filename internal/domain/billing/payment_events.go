package billing

import (
	"github.com/dormsync/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant for Payment
const AggregateTypePayment = "Payment"

// Payment domain event types
const (
	EventTypePaymentVerified = "PaymentVerified"
)

// PaymentVerifiedEvent is published exactly once when a payment enters
// the verified status. Notification handlers use it to tell the student.
type PaymentVerifiedEvent struct {
	shared.BaseDomainEvent
	StudentID uuid.UUID       `json:"student_id"`
	Amount    decimal.Decimal `json:"amount"`
	Type      string          `json:"payment_type"`
}

// NewPaymentVerifiedEvent creates a new PaymentVerifiedEvent
func NewPaymentVerifiedEvent(payment *Payment) *PaymentVerifiedEvent {
	return &PaymentVerifiedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentVerified, AggregateTypePayment, payment.ID),
		StudentID:       payment.StudentID,
		Amount:          payment.Amount,
		Type:            payment.Type,
	}
}
