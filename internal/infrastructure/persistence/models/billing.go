package models

import (
	"time"

	"github.com/dormsync/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentModel is the persistence model for the Payment domain entity.
type PaymentModel struct {
	AggregateModel
	StudentID        uuid.UUID             `gorm:"type:uuid;not null;index"`
	Amount           decimal.Decimal       `gorm:"type:decimal(12,2);not null"`
	Type             string                `gorm:"type:varchar(100);not null"`
	Status           billing.PaymentStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	DueDate          time.Time             `gorm:"not null;index"`
	PaidDate         *time.Time
	Notes            string `gorm:"type:text"`
	ReceiptStorageID string `gorm:"type:varchar(255)"`
	ReceiptURL       string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment entity
func (m *PaymentModel) ToDomain() *billing.Payment {
	return &billing.Payment{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		StudentID:         m.StudentID,
		Amount:            m.Amount,
		Type:              m.Type,
		Status:            m.Status,
		DueDate:           m.DueDate,
		PaidDate:          m.PaidDate,
		Notes:             m.Notes,
		ReceiptStorageID:  m.ReceiptStorageID,
		ReceiptURL:        m.ReceiptURL,
	}
}

// FromDomain populates the persistence model from a domain Payment entity
func (m *PaymentModel) FromDomain(p *billing.Payment) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.StudentID = p.StudentID
	m.Amount = p.Amount
	m.Type = p.Type
	m.Status = p.Status
	m.DueDate = p.DueDate
	m.PaidDate = p.PaidDate
	m.Notes = p.Notes
	m.ReceiptStorageID = p.ReceiptStorageID
	m.ReceiptURL = p.ReceiptURL
}
