package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/dormsync/backend/internal/domain/attendance"
	"github.com/dormsync/backend/internal/domain/shared"
	"github.com/dormsync/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAttendanceLogRepository implements LogRepository using GORM
type GormAttendanceLogRepository struct {
	db *gorm.DB
}

// NewGormAttendanceLogRepository creates a new GormAttendanceLogRepository
func NewGormAttendanceLogRepository(db *gorm.DB) *GormAttendanceLogRepository {
	return &GormAttendanceLogRepository{db: db}
}

// Create creates a new log. Two concurrent check-ins for the same
// (student, date) race on the unique constraint; the loser gets
// shared.ErrAlreadyExists and retries with a read.
func (r *GormAttendanceLogRepository) Create(ctx context.Context, log *attendance.Log) error {
	var model models.AttendanceLogModel
	model.FromDomain(log)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Update updates an existing log
func (r *GormAttendanceLogRepository) Update(ctx context.Context, log *attendance.Log) error {
	var model models.AttendanceLogModel
	model.FromDomain(log)
	return r.db.WithContext(ctx).Save(&model).Error
}

// FindByID finds a log by ID
func (r *GormAttendanceLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*attendance.Log, error) {
	var model models.AttendanceLogModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByStudentAndDate finds the log for a (student, date) pair
func (r *GormAttendanceLogRepository) FindByStudentAndDate(ctx context.Context, studentID uuid.UUID, date time.Time) (*attendance.Log, error) {
	var model models.AttendanceLogModel
	if err := r.db.WithContext(ctx).
		Where("student_id = ? AND date = ?", studentID, attendance.DateOf(date)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByDate returns all logs for a calendar date
func (r *GormAttendanceLogRepository) FindByDate(ctx context.Context, date time.Time) ([]*attendance.Log, error) {
	var rows []models.AttendanceLogModel
	if err := r.db.WithContext(ctx).
		Where("date = ?", attendance.DateOf(date)).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	logs := make([]*attendance.Log, len(rows))
	for i := range rows {
		logs[i] = rows[i].ToDomain()
	}
	return logs, nil
}

// FindByStudent returns all logs for a student, newest first
func (r *GormAttendanceLogRepository) FindByStudent(ctx context.Context, studentID uuid.UUID) ([]*attendance.Log, error) {
	var rows []models.AttendanceLogModel
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("date DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	logs := make([]*attendance.Log, len(rows))
	for i := range rows {
		logs[i] = rows[i].ToDomain()
	}
	return logs, nil
}

var _ attendance.LogRepository = (*GormAttendanceLogRepository)(nil)
