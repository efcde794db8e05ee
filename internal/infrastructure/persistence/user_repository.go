package persistence

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/dormsync/backend/internal/domain/identity"
	"github.com/dormsync/backend/internal/domain/shared"
	"github.com/dormsync/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormUserRepository implements UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(ctx context.Context, user *identity.User) error {
	var model models.UserModel
	model.FromDomain(user)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return r.translateUniqueViolation(ctx, user, err)
	}
	return nil
}

// Update updates an existing user
func (r *GormUserRepository) Update(ctx context.Context, user *identity.User) error {
	var model models.UserModel
	model.FromDomain(user)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return r.translateUniqueViolation(ctx, user, err)
	}
	return nil
}

// Delete deletes a user by ID, cascading to dependent records
func (r *GormUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.StudentProfileModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("student_id = ?", id).Delete(&models.AttendanceLogModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("student_id = ?", id).Delete(&models.PaymentModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("student_id = ?", id).Delete(&models.MaintenanceRequestModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.UserModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByStudentID finds a user by student identifier
func (r *GormUserRepository) FindByStudentID(ctx context.Context, studentID string) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", strings.TrimSpace(studentID)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIdentifier resolves a user by student identifier, ID, or email,
// in that order
func (r *GormUserRepository) FindByIdentifier(ctx context.Context, identifier string) (*identity.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, shared.ErrNotFound
	}

	user, err := r.FindByStudentID(ctx, identifier)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if id, parseErr := uuid.Parse(identifier); parseErr == nil {
		user, err = r.FindByID(ctx, id)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}

	return r.FindByEmail(ctx, identifier)
}

// FindStudents returns all student users with pagination
func (r *GormUserRepository) FindStudents(ctx context.Context, filter identity.StudentFilter) ([]*identity.User, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("users.role = ?", identity.RoleStudent)

	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		pattern := "%" + strings.ToLower(keyword) + "%"
		query = query.Where(
			"LOWER(users.full_name) LIKE ? OR LOWER(users.email) LIKE ? OR LOWER(users.student_id) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	if filter.Status != nil {
		query = query.
			Joins("JOIN student_profiles ON student_profiles.user_id = users.id").
			Where("student_profiles.status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	var rows []models.UserModel
	if err := query.
		Order("users.created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	users := make([]*identity.User, len(rows))
	for i := range rows {
		users[i] = rows[i].ToDomain()
	}
	return users, total, nil
}

// FindAdmins returns all admin users
func (r *GormUserRepository) FindAdmins(ctx context.Context) ([]*identity.User, error) {
	var rows []models.UserModel
	if err := r.db.WithContext(ctx).
		Where("role = ?", identity.RoleAdmin).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	users := make([]*identity.User, len(rows))
	for i := range rows {
		users[i] = rows[i].ToDomain()
	}
	return users, nil
}

// FindWithPushTarget returns all users with a registered push target
func (r *GormUserRepository) FindWithPushTarget(ctx context.Context) ([]*identity.User, error) {
	var rows []models.UserModel
	if err := r.db.WithContext(ctx).
		Where("push_token <> ''").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	users := make([]*identity.User, len(rows))
	for i := range rows {
		users[i] = rows[i].ToDomain()
	}
	return users, nil
}

// ExistsByEmail checks if an email already exists
func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByStudentID checks if a student identifier already exists
func (r *GormUserRepository) ExistsByStudentID(ctx context.Context, studentID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("student_id = ?", strings.TrimSpace(studentID)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// StudentSequencesForYear returns the numeric suffixes of every student
// identifier carrying the given year prefix
func (r *GormUserRepository) StudentSequencesForYear(ctx context.Context, yearPrefix string) ([]int, error) {
	var identifiers []string
	if err := r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("student_id LIKE ?", yearPrefix+"%").
		Pluck("student_id", &identifiers).Error; err != nil {
		return nil, err
	}

	sequences := make([]int, 0, len(identifiers))
	for _, id := range identifiers {
		suffix := strings.TrimPrefix(id, yearPrefix)
		seq, err := strconv.Atoi(suffix)
		if err != nil {
			// legacy identifiers with non-numeric suffixes don't
			// participate in sequence allocation
			continue
		}
		sequences = append(sequences, seq)
	}
	return sequences, nil
}

// CountStudents returns the total number of student users
func (r *GormUserRepository) CountStudents(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("role = ?", identity.RoleStudent).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// translateUniqueViolation maps a duplicate-key error onto the domain
// error callers branch on. The translated error carries no constraint
// name, so a follow-up lookup tells the email and student identifier
// indexes apart: a retryable identifier collision must not read as a
// duplicate email.
func (r *GormUserRepository) translateUniqueViolation(ctx context.Context, user *identity.User, err error) error {
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}

	var count int64
	lookupErr := r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("email = ? AND id <> ?", user.Email, user.ID).
		Count(&count).Error
	if lookupErr == nil && count > 0 {
		return identity.ErrEmailTaken
	}
	if user.StudentID != nil {
		return identity.ErrStudentIDTaken
	}
	return identity.ErrEmailTaken
}

var _ identity.UserRepository = (*GormUserRepository)(nil)
