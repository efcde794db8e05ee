package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/dormsync/backend/internal/domain/facility"
	"github.com/dormsync/backend/internal/domain/shared"
	"github.com/dormsync/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCleaningScheduleRepository implements CleaningScheduleRepository using GORM
type GormCleaningScheduleRepository struct {
	db *gorm.DB
}

// NewGormCleaningScheduleRepository creates a new GormCleaningScheduleRepository
func NewGormCleaningScheduleRepository(db *gorm.DB) *GormCleaningScheduleRepository {
	return &GormCleaningScheduleRepository{db: db}
}

// Create creates a new cleaning schedule
func (r *GormCleaningScheduleRepository) Create(ctx context.Context, schedule *facility.CleaningSchedule) error {
	var model models.CleaningScheduleModel
	model.FromDomain(schedule)
	return r.db.WithContext(ctx).Create(&model).Error
}

// Update updates an existing cleaning schedule
func (r *GormCleaningScheduleRepository) Update(ctx context.Context, schedule *facility.CleaningSchedule) error {
	var model models.CleaningScheduleModel
	model.FromDomain(schedule)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete deletes a cleaning schedule by ID
func (r *GormCleaningScheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CleaningScheduleModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a cleaning schedule by ID
func (r *GormCleaningScheduleRepository) FindByID(ctx context.Context, id uuid.UUID) (*facility.CleaningSchedule, error) {
	var model models.CleaningScheduleModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all cleaning schedules ordered by scheduled date
func (r *GormCleaningScheduleRepository) FindAll(ctx context.Context) ([]*facility.CleaningSchedule, error) {
	var rows []models.CleaningScheduleModel
	if err := r.db.WithContext(ctx).
		Order("scheduled_date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toCleaningSchedules(rows), nil
}

// FindByDateRange returns schedules falling within [from, to]
func (r *GormCleaningScheduleRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]*facility.CleaningSchedule, error) {
	var rows []models.CleaningScheduleModel
	if err := r.db.WithContext(ctx).
		Where("scheduled_date >= ? AND scheduled_date <= ?", from, to).
		Order("scheduled_date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toCleaningSchedules(rows), nil
}

// CountByStatus counts cleaning schedules with the given status
func (r *GormCleaningScheduleRepository) CountByStatus(ctx context.Context, status facility.ScheduleStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CleaningScheduleModel{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func toCleaningSchedules(rows []models.CleaningScheduleModel) []*facility.CleaningSchedule {
	schedules := make([]*facility.CleaningSchedule, len(rows))
	for i := range rows {
		schedules[i] = rows[i].ToDomain()
	}
	return schedules
}

var _ facility.CleaningScheduleRepository = (*GormCleaningScheduleRepository)(nil)
