package billing

import (
	"strings"
	"time"

	"github.com/dormsync/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents the lifecycle status of a payment
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusOverdue  PaymentStatus = "overdue"
	PaymentStatusVerified PaymentStatus = "verified"
)

// ValidStatus reports whether s is one of the enumerated payment statuses
func ValidStatus(s PaymentStatus) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusOverdue, PaymentStatusVerified:
		return true
	}
	return false
}

// Payment represents a student payment obligation.
// Invariant: PaidDate is set if and only if Status is paid or verified.
type Payment struct {
	shared.BaseAggregateRoot
	StudentID        uuid.UUID
	Amount           decimal.Decimal
	Type             string
	Status           PaymentStatus
	DueDate          time.Time
	PaidDate         *time.Time
	Notes            string
	ReceiptStorageID string
	ReceiptURL       string
}

// NewPayment creates a payment and applies the paid-date derivation rule:
// a payment born paid or verified is stamped with now.
func NewPayment(studentID uuid.UUID, amount decimal.Decimal, paymentType string, status PaymentStatus, dueDate time.Time, notes string) (*Payment, error) {
	if studentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STUDENT", "Student reference is required")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}
	paymentType = strings.TrimSpace(paymentType)
	if paymentType == "" {
		return nil, shared.NewDomainError("INVALID_TYPE", "Payment type is required")
	}
	if !ValidStatus(status) {
		return nil, shared.NewDomainError("INVALID_STATUS", "Status must be pending, paid, overdue, or verified")
	}
	if dueDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date is required")
	}

	payment := &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		StudentID:         studentID,
		Amount:            amount,
		Type:              paymentType,
		Status:            status,
		DueDate:           dueDate,
		Notes:             notes,
	}

	if payment.isSettled() {
		now := time.Now()
		payment.PaidDate = &now
	}

	// A payment created directly as verified still announces it once
	if status == PaymentStatusVerified {
		payment.AddDomainEvent(NewPaymentVerifiedEvent(payment))
	}

	return payment, nil
}

// ChangeStatus transitions the payment status, deriving the paid date:
// paid/verified stamp it (when unset), pending/overdue clear it.
// Entering verified from any other status fires the one-time verified
// event; re-saving an already-verified payment fires nothing.
func (p *Payment) ChangeStatus(status PaymentStatus) error {
	if !ValidStatus(status) {
		return shared.NewDomainError("INVALID_STATUS", "Status must be pending, paid, overdue, or verified")
	}

	wasVerified := p.Status == PaymentStatusVerified
	p.Status = status

	switch status {
	case PaymentStatusPaid, PaymentStatusVerified:
		if p.PaidDate == nil {
			now := time.Now()
			p.PaidDate = &now
		}
	case PaymentStatusPending, PaymentStatusOverdue:
		p.PaidDate = nil
	}

	if status == PaymentStatusVerified && !wasVerified {
		p.AddDomainEvent(NewPaymentVerifiedEvent(p))
	}

	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetAmount updates the amount
func (p *Payment) SetAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}

	p.Amount = amount
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetType updates the payment type
func (p *Payment) SetType(paymentType string) error {
	paymentType = strings.TrimSpace(paymentType)
	if paymentType == "" {
		return shared.NewDomainError("INVALID_TYPE", "Payment type is required")
	}

	p.Type = paymentType
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetDueDate updates the due date
func (p *Payment) SetDueDate(dueDate time.Time) error {
	if dueDate.IsZero() {
		return shared.NewDomainError("INVALID_DUE_DATE", "Due date is required")
	}

	p.DueDate = dueDate
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetNotes updates the free-text notes
func (p *Payment) SetNotes(notes string) {
	p.Notes = notes
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// AttachReceipt records the uploaded proof-of-payment reference
func (p *Payment) AttachReceipt(storageID, url string) {
	p.ReceiptStorageID = storageID
	p.ReceiptURL = url
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

func (p *Payment) isSettled() bool {
	return p.Status == PaymentStatusPaid || p.Status == PaymentStatusVerified
}
