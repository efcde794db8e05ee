package persistence

import (
	"context"

	appidentity "github.com/dormsync/backend/internal/application/identity"
	"github.com/dormsync/backend/internal/domain/housing"
	"github.com/dormsync/backend/internal/domain/identity"
	"gorm.io/gorm"
)

// GormEnrollmentScope implements TransactionScope using GORM transactions.
// It provides atomic execution of the repository operations enrollment
// touches.
type GormEnrollmentScope struct {
	db *gorm.DB
}

// NewGormEnrollmentScope creates a new GormEnrollmentScope
func NewGormEnrollmentScope(db *gorm.DB) *GormEnrollmentScope {
	return &GormEnrollmentScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormEnrollmentScope) Execute(ctx context.Context, fn func(repos appidentity.EnrollmentRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormEnrollmentRepositories{tx: tx})
	})
}

// gormEnrollmentRepositories provides access to the enrollment
// repositories within a transaction.
type gormEnrollmentRepositories struct {
	tx *gorm.DB
}

// Users returns the user repository scoped to the current transaction
func (r *gormEnrollmentRepositories) Users() identity.UserRepository {
	return NewGormUserRepository(r.tx)
}

// Profiles returns the profile repository scoped to the current transaction
func (r *gormEnrollmentRepositories) Profiles() identity.StudentProfileRepository {
	return NewGormStudentProfileRepository(r.tx)
}

// Rooms returns the room repository scoped to the current transaction
func (r *gormEnrollmentRepositories) Rooms() housing.RoomRepository {
	return NewGormRoomRepository(r.tx)
}

var (
	_ appidentity.TransactionScope       = (*GormEnrollmentScope)(nil)
	_ appidentity.EnrollmentRepositories = (*gormEnrollmentRepositories)(nil)
)
