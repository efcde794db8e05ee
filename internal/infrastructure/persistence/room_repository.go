package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/dormsync/backend/internal/domain/housing"
	"github.com/dormsync/backend/internal/domain/shared"
	"github.com/dormsync/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRoomRepository implements RoomRepository using GORM
type GormRoomRepository struct {
	db *gorm.DB
}

// NewGormRoomRepository creates a new GormRoomRepository
func NewGormRoomRepository(db *gorm.DB) *GormRoomRepository {
	return &GormRoomRepository{db: db}
}

// Create creates a new room
func (r *GormRoomRepository) Create(ctx context.Context, room *housing.Room) error {
	var model models.RoomModel
	model.FromDomain(room)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Update updates an existing room
func (r *GormRoomRepository) Update(ctx context.Context, room *housing.Room) error {
	var model models.RoomModel
	model.FromDomain(room)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Delete deletes a room by ID, refusing while occupants remain
func (r *GormRoomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var occupants int64
		if err := tx.Model(&models.StudentProfileModel{}).
			Where("room_id = ?", id).
			Count(&occupants).Error; err != nil {
			return err
		}
		if occupants > 0 {
			return shared.ErrRoomNotEmpty
		}

		result := tx.Delete(&models.RoomModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// FindByID finds a room by ID
func (r *GormRoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*housing.Room, error) {
	var model models.RoomModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds a room by ID and locks its row for the
// remainder of the transaction
func (r *GormRoomRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*housing.Room, error) {
	var model models.RoomModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a room by its unique code
func (r *GormRoomRepository) FindByCode(ctx context.Context, code string) (*housing.Room, error) {
	var model models.RoomModel
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.TrimSpace(code)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllWithOccupancy returns all rooms ordered by code, each with its
// occupant count
func (r *GormRoomRepository) FindAllWithOccupancy(ctx context.Context) ([]housing.RoomWithOccupancy, error) {
	var rows []models.RoomModel
	if err := r.db.WithContext(ctx).
		Order("code ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	type occupancyRow struct {
		RoomID uuid.UUID
		Count  int64
	}
	var counts []occupancyRow
	if err := r.db.WithContext(ctx).
		Model(&models.StudentProfileModel{}).
		Select("room_id AS room_id, COUNT(*) AS count").
		Where("room_id IS NOT NULL").
		Group("room_id").
		Scan(&counts).Error; err != nil {
		return nil, err
	}

	countByRoom := make(map[uuid.UUID]int64, len(counts))
	for _, c := range counts {
		countByRoom[c.RoomID] = c.Count
	}

	result := make([]housing.RoomWithOccupancy, len(rows))
	for i := range rows {
		result[i] = housing.RoomWithOccupancy{
			Room:          rows[i].ToDomain(),
			OccupantCount: countByRoom[rows[i].ID],
		}
	}
	return result, nil
}

// ExistsByCode checks if a room code already exists
func (r *GormRoomRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.RoomModel{}).
		Where("code = ?", strings.TrimSpace(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ housing.RoomRepository = (*GormRoomRepository)(nil)
