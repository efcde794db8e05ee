package persistence

import (
	"context"
	"errors"

	"github.com/dormsync/backend/internal/domain/housing"
	"github.com/dormsync/backend/internal/domain/identity"
	"github.com/dormsync/backend/internal/domain/shared"
	"github.com/dormsync/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStudentProfileRepository implements StudentProfileRepository using GORM
type GormStudentProfileRepository struct {
	db *gorm.DB
}

// NewGormStudentProfileRepository creates a new GormStudentProfileRepository
func NewGormStudentProfileRepository(db *gorm.DB) *GormStudentProfileRepository {
	return &GormStudentProfileRepository{db: db}
}

// Create creates a new profile
func (r *GormStudentProfileRepository) Create(ctx context.Context, profile *identity.StudentProfile) error {
	var model models.StudentProfileModel
	model.FromDomain(profile)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Update updates an existing profile
func (r *GormStudentProfileRepository) Update(ctx context.Context, profile *identity.StudentProfile) error {
	var model models.StudentProfileModel
	model.FromDomain(profile)
	return r.db.WithContext(ctx).Save(&model).Error
}

// FindByUserID finds the profile belonging to a user
func (r *GormStudentProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*identity.StudentProfile, error) {
	var model models.StudentProfileModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUserIDs finds the profiles belonging to the given users
func (r *GormStudentProfileRepository) FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) ([]*identity.StudentProfile, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	var rows []models.StudentProfileModel
	if err := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	profiles := make([]*identity.StudentProfile, len(rows))
	for i := range rows {
		profiles[i] = rows[i].ToDomain()
	}
	return profiles, nil
}

// CountByRoomID counts profiles referencing a room, optionally excluding
// one user (for re-save during transfer)
func (r *GormStudentProfileRepository) CountByRoomID(ctx context.Context, roomID uuid.UUID, excludeUserID *uuid.UUID) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.StudentProfileModel{}).
		Where("room_id = ?", roomID)
	if excludeUserID != nil {
		query = query.Where("user_id <> ?", *excludeUserID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByRoomID reports whether any profile references the room
func (r *GormStudentProfileRepository) ExistsByRoomID(ctx context.Context, roomID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.StudentProfileModel{}).
		Where("room_id = ?", roomID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var (
	_ identity.StudentProfileRepository = (*GormStudentProfileRepository)(nil)
	_ housing.OccupancyCounter          = (*GormStudentProfileRepository)(nil)
)
