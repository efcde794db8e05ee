package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/dormsync/backend/internal/domain/billing"
	"github.com/dormsync/backend/internal/domain/shared"
	"github.com/dormsync/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPaymentRepository implements PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Create creates a new payment
func (r *GormPaymentRepository) Create(ctx context.Context, payment *billing.Payment) error {
	var model models.PaymentModel
	model.FromDomain(payment)
	return r.db.WithContext(ctx).Create(&model).Error
}

// CreateBatch creates payments atomically: all rows or none
func (r *GormPaymentRepository) CreateBatch(ctx context.Context, payments []*billing.Payment) error {
	if len(payments) == 0 {
		return nil
	}

	rows := make([]models.PaymentModel, len(payments))
	for i, payment := range payments {
		rows[i].FromDomain(payment)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&rows).Error
	})
}

// Update updates an existing payment
func (r *GormPaymentRepository) Update(ctx context.Context, payment *billing.Payment) error {
	var model models.PaymentModel
	model.FromDomain(payment)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete deletes a payment by ID
func (r *GormPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PaymentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a payment by ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns payments newest first, optionally filtered by student
func (r *GormPaymentRepository) FindAll(ctx context.Context, studentID *uuid.UUID) ([]*billing.Payment, error) {
	query := r.db.WithContext(ctx).Model(&models.PaymentModel{})
	if studentID != nil {
		query = query.Where("student_id = ?", *studentID)
	}

	var rows []models.PaymentModel
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	payments := make([]*billing.Payment, len(rows))
	for i := range rows {
		payments[i] = rows[i].ToDomain()
	}
	return payments, nil
}

// CountByStatus counts payments with the given status
func (r *GormPaymentRepository) CountByStatus(ctx context.Context, status billing.PaymentStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// MarkOverdue flips pending payments whose due date has passed to overdue
func (r *GormPaymentRepository) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Where("status = ? AND due_date < ?", billing.PaymentStatusPending, asOf).
		Updates(map[string]any{
			"status":     billing.PaymentStatusOverdue,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

var _ billing.PaymentRepository = (*GormPaymentRepository)(nil)
