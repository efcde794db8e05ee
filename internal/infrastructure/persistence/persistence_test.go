package persistence

import (
	"testing"

	"github.com/dormsync/backend/internal/domain/identity"
	"github.com/dormsync/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database with the full schema.
// TranslateError is on so unique violations surface as
// gorm.ErrDuplicatedKey, same as the production Postgres setup.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.UserModel{},
		&models.StudentProfileModel{},
		&models.RoomModel{},
		&models.AttendanceLogModel{},
		&models.PaymentModel{},
		&models.MaintenanceRequestModel{},
		&models.CleaningScheduleModel{},
		&models.AnnouncementModel{},
	)
	require.NoError(t, err)

	return db
}

func newTestStudent(t *testing.T, firstName, lastName, email string) *identity.User {
	t.Helper()
	user, err := identity.NewStudent(firstName, lastName, "", email, "str0ng-password")
	require.NoError(t, err)
	user.ClearDomainEvents()
	return user
}

func newTestAdmin(t *testing.T, email string) *identity.User {
	t.Helper()
	user, err := identity.NewUser(identity.RoleAdmin, "Dorm", "Manager", "", email, "str0ng-password")
	require.NoError(t, err)
	user.ClearDomainEvents()
	return user
}
