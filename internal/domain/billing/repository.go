package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PaymentRepository defines the interface for payment persistence
type PaymentRepository interface {
	// Create creates a new payment
	Create(ctx context.Context, payment *Payment) error

	// CreateBatch creates payments atomically: all rows or none.
	// Implementations wrap the inserts in a single transaction.
	CreateBatch(ctx context.Context, payments []*Payment) error

	// Update updates an existing payment
	Update(ctx context.Context, payment *Payment) error

	// Delete deletes a payment by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds a payment by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindAll returns payments newest first, optionally filtered by student
	FindAll(ctx context.Context, studentID *uuid.UUID) ([]*Payment, error)

	// CountByStatus counts payments with the given status
	CountByStatus(ctx context.Context, status PaymentStatus) (int64, error)

	// MarkOverdue flips pending payments whose due date has passed to
	// overdue, returning the number of rows changed
	MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)
}
