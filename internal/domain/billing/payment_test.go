package billing

import (
	"testing"
	"time"

	"github.com/dormsync/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dueDate() time.Time {
	return time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
}

func pendingPayment(t *testing.T) *Payment {
	t.Helper()
	p, err := NewPayment(uuid.New(), decimal.NewFromInt(1500), "rent", PaymentStatusPending, dueDate(), "")
	require.NoError(t, err)
	p.ClearDomainEvents()
	return p
}

func TestNewPayment(t *testing.T) {
	studentID := uuid.New()
	p, err := NewPayment(studentID, decimal.NewFromFloat(1500.50), "rent", PaymentStatusPending, dueDate(), "June rent")
	require.NoError(t, err)

	assert.Equal(t, studentID, p.StudentID)
	assert.True(t, p.Amount.Equal(decimal.NewFromFloat(1500.50)))
	assert.Equal(t, PaymentStatusPending, p.Status)
	assert.Nil(t, p.PaidDate)
	assert.Empty(t, p.GetDomainEvents())
}

func TestNewPayment_BornPaidStampsPaidDate(t *testing.T) {
	p, err := NewPayment(uuid.New(), decimal.NewFromInt(500), "deposit", PaymentStatusPaid, dueDate(), "")
	require.NoError(t, err)

	require.NotNil(t, p.PaidDate)
	assert.WithinDuration(t, time.Now(), *p.PaidDate, time.Minute)
}

func TestNewPayment_Validation(t *testing.T) {
	tests := []struct {
		name      string
		studentID uuid.UUID
		amount    decimal.Decimal
		ptype     string
		status    PaymentStatus
		due       time.Time
	}{
		{"nil student", uuid.Nil, decimal.NewFromInt(100), "rent", PaymentStatusPending, dueDate()},
		{"negative amount", uuid.New(), decimal.NewFromInt(-50), "rent", PaymentStatusPending, dueDate()},
		{"empty type", uuid.New(), decimal.NewFromInt(100), "  ", PaymentStatusPending, dueDate()},
		{"bad status", uuid.New(), decimal.NewFromInt(100), "rent", PaymentStatus("cancelled"), dueDate()},
		{"zero due date", uuid.New(), decimal.NewFromInt(100), "rent", PaymentStatusPending, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPayment(tt.studentID, tt.amount, tt.ptype, tt.status, tt.due, "")
			assert.Error(t, err)
		})
	}

	// Zero amount is allowed (non-negative)
	_, err := NewPayment(uuid.New(), decimal.Zero, "waived", PaymentStatusPending, dueDate(), "")
	assert.NoError(t, err)
}

func TestPayment_PaidDateConsistency(t *testing.T) {
	p := pendingPayment(t)

	// pending -> paid stamps the paid date
	require.NoError(t, p.ChangeStatus(PaymentStatusPaid))
	require.NotNil(t, p.PaidDate)

	// paid -> pending clears it
	require.NoError(t, p.ChangeStatus(PaymentStatusPending))
	assert.Nil(t, p.PaidDate)

	// pending -> overdue keeps it clear
	require.NoError(t, p.ChangeStatus(PaymentStatusOverdue))
	assert.Nil(t, p.PaidDate)

	// overdue -> verified stamps it again
	require.NoError(t, p.ChangeStatus(PaymentStatusVerified))
	require.NotNil(t, p.PaidDate)

	// Invariant after every transition: paidDate != nil <=> settled
	for _, status := range []PaymentStatus{PaymentStatusPaid, PaymentStatusOverdue, PaymentStatusVerified, PaymentStatusPending} {
		require.NoError(t, p.ChangeStatus(status))
		settled := status == PaymentStatusPaid || status == PaymentStatusVerified
		assert.Equal(t, settled, p.PaidDate != nil, "status %s", status)
	}
}

func TestPayment_VerifiedEventFiresOnce(t *testing.T) {
	p := pendingPayment(t)

	require.NoError(t, p.ChangeStatus(PaymentStatusVerified))
	events := p.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypePaymentVerified, events[0].EventType())

	// Re-saving while already verified fires nothing further
	p.ClearDomainEvents()
	require.NoError(t, p.ChangeStatus(PaymentStatusVerified))
	assert.Empty(t, p.GetDomainEvents())
}

func TestPayment_VerifiedEventRefiresAfterRevert(t *testing.T) {
	p := pendingPayment(t)

	require.NoError(t, p.ChangeStatus(PaymentStatusVerified))
	p.ClearDomainEvents()

	require.NoError(t, p.ChangeStatus(PaymentStatusPending))
	require.NoError(t, p.ChangeStatus(PaymentStatusVerified))

	assert.Len(t, p.GetDomainEvents(), 1)
}

func TestPayment_ChangeStatus_Invalid(t *testing.T) {
	p := pendingPayment(t)

	err := p.ChangeStatus(PaymentStatus("refunded"))
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATUS", domainErr.Code)
	assert.Equal(t, PaymentStatusPending, p.Status)
}

func TestPayment_AttachReceipt(t *testing.T) {
	p := pendingPayment(t)

	p.AttachReceipt("drive-abc", "https://files.example.com/drive-abc")
	assert.Equal(t, "drive-abc", p.ReceiptStorageID)
	assert.Equal(t, "https://files.example.com/drive-abc", p.ReceiptURL)
}
