package persistence

import (
	"context"
	"errors"

	"github.com/dormsync/backend/internal/domain/facility"
	"github.com/dormsync/backend/internal/domain/shared"
	"github.com/dormsync/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMaintenanceRequestRepository implements MaintenanceRequestRepository using GORM
type GormMaintenanceRequestRepository struct {
	db *gorm.DB
}

// NewGormMaintenanceRequestRepository creates a new GormMaintenanceRequestRepository
func NewGormMaintenanceRequestRepository(db *gorm.DB) *GormMaintenanceRequestRepository {
	return &GormMaintenanceRequestRepository{db: db}
}

// Create creates a new maintenance request
func (r *GormMaintenanceRequestRepository) Create(ctx context.Context, req *facility.MaintenanceRequest) error {
	var model models.MaintenanceRequestModel
	model.FromDomain(req)
	return r.db.WithContext(ctx).Create(&model).Error
}

// Update updates an existing maintenance request
func (r *GormMaintenanceRequestRepository) Update(ctx context.Context, req *facility.MaintenanceRequest) error {
	var model models.MaintenanceRequestModel
	model.FromDomain(req)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete deletes a maintenance request by ID
func (r *GormMaintenanceRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.MaintenanceRequestModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a maintenance request by ID
func (r *GormMaintenanceRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*facility.MaintenanceRequest, error) {
	var model models.MaintenanceRequestModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns maintenance requests matching the filter, newest first
func (r *GormMaintenanceRequestRepository) FindAll(ctx context.Context, filter facility.MaintenanceRequestFilter) ([]*facility.MaintenanceRequest, error) {
	query := r.db.WithContext(ctx).Model(&models.MaintenanceRequestModel{})
	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Urgency != nil {
		query = query.Where("urgency = ?", *filter.Urgency)
	}

	var rows []models.MaintenanceRequestModel
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	requests := make([]*facility.MaintenanceRequest, len(rows))
	for i := range rows {
		requests[i] = rows[i].ToDomain()
	}
	return requests, nil
}

// CountByStatus counts maintenance requests with the given status
func (r *GormMaintenanceRequestRepository) CountByStatus(ctx context.Context, status facility.RequestStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.MaintenanceRequestModel{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindUrgentUnresolved returns the newest high-urgency requests that are
// not yet resolved, at most limit of them
func (r *GormMaintenanceRequestRepository) FindUrgentUnresolved(ctx context.Context, limit int) ([]*facility.MaintenanceRequest, error) {
	var rows []models.MaintenanceRequestModel
	if err := r.db.WithContext(ctx).
		Where("urgency = ? AND status <> ?", facility.UrgencyHigh, facility.RequestStatusResolved).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	requests := make([]*facility.MaintenanceRequest, len(rows))
	for i := range rows {
		requests[i] = rows[i].ToDomain()
	}
	return requests, nil
}

var _ facility.MaintenanceRequestRepository = (*GormMaintenanceRequestRepository)(nil)
