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

// GormAnnouncementRepository implements AnnouncementRepository using GORM
type GormAnnouncementRepository struct {
	db *gorm.DB
}

// NewGormAnnouncementRepository creates a new GormAnnouncementRepository
func NewGormAnnouncementRepository(db *gorm.DB) *GormAnnouncementRepository {
	return &GormAnnouncementRepository{db: db}
}

// Create creates a new announcement
func (r *GormAnnouncementRepository) Create(ctx context.Context, announcement *facility.Announcement) error {
	var model models.AnnouncementModel
	model.FromDomain(announcement)
	return r.db.WithContext(ctx).Create(&model).Error
}

// Update updates an existing announcement
func (r *GormAnnouncementRepository) Update(ctx context.Context, announcement *facility.Announcement) error {
	var model models.AnnouncementModel
	model.FromDomain(announcement)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete deletes an announcement by ID
func (r *GormAnnouncementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.AnnouncementModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds an announcement by ID
func (r *GormAnnouncementRepository) FindByID(ctx context.Context, id uuid.UUID) (*facility.Announcement, error) {
	var model models.AnnouncementModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all announcements, newest first
func (r *GormAnnouncementRepository) FindAll(ctx context.Context) ([]*facility.Announcement, error) {
	var rows []models.AnnouncementModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toAnnouncements(rows), nil
}

// FindRecent returns the newest announcements, at most limit of them
func (r *GormAnnouncementRepository) FindRecent(ctx context.Context, limit int) ([]*facility.Announcement, error) {
	var rows []models.AnnouncementModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toAnnouncements(rows), nil
}

func toAnnouncements(rows []models.AnnouncementModel) []*facility.Announcement {
	announcements := make([]*facility.Announcement, len(rows))
	for i := range rows {
		announcements[i] = rows[i].ToDomain()
	}
	return announcements
}

var _ facility.AnnouncementRepository = (*GormAnnouncementRepository)(nil)
