package identity

import (
	"context"

	"github.com/dormsync/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Uniqueness violations surfaced by repository implementations. Telling
// them apart matters: a generated student identifier collision is
// retryable, a duplicate email is not.
var (
	ErrEmailTaken     = shared.NewDomainError("EMAIL_ALREADY_EXISTS", "Email is already registered")
	ErrStudentIDTaken = shared.NewDomainError("STUDENT_ID_ALREADY_EXISTS", "Student identifier is already in use")
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// Update updates an existing user
	Update(ctx context.Context, user *User) error

	// Delete deletes a user by ID, cascading to dependent records
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByStudentID finds a user by student identifier
	FindByStudentID(ctx context.Context, studentID string) (*User, error)

	// FindByIdentifier resolves a user by student identifier, ID, or email,
	// in that order
	FindByIdentifier(ctx context.Context, identifier string) (*User, error)

	// FindStudents returns all student users with pagination
	FindStudents(ctx context.Context, filter StudentFilter) ([]*User, int64, error)

	// FindAdmins returns all admin users
	FindAdmins(ctx context.Context) ([]*User, error)

	// FindWithPushTarget returns all users with a registered push target
	FindWithPushTarget(ctx context.Context) ([]*User, error)

	// ExistsByEmail checks if an email already exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// ExistsByStudentID checks if a student identifier already exists
	ExistsByStudentID(ctx context.Context, studentID string) (bool, error)

	// StudentSequencesForYear returns the numeric suffixes of every student
	// identifier carrying the given year prefix (e.g. "2025-")
	StudentSequencesForYear(ctx context.Context, yearPrefix string) ([]int, error)

	// CountStudents returns the total number of student users
	CountStudents(ctx context.Context) (int64, error)
}

// StudentFilter contains filter options for querying students
type StudentFilter struct {
	// Search keyword for name, email, or student identifier
	Keyword string

	// Filter by profile status
	Status *ProfileStatus

	Page     int
	PageSize int
}

// StudentProfileRepository defines the interface for profile persistence
type StudentProfileRepository interface {
	// Create creates a new profile
	Create(ctx context.Context, profile *StudentProfile) error

	// Update updates an existing profile
	Update(ctx context.Context, profile *StudentProfile) error

	// FindByUserID finds the profile belonging to a user
	FindByUserID(ctx context.Context, userID uuid.UUID) (*StudentProfile, error)

	// FindByUserIDs finds the profiles belonging to the given users
	FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) ([]*StudentProfile, error)

	// CountByRoomID counts profiles referencing a room, optionally
	// excluding one user (for re-save during transfer)
	CountByRoomID(ctx context.Context, roomID uuid.UUID, excludeUserID *uuid.UUID) (int64, error)

	// ExistsByRoomID reports whether any profile references the room
	ExistsByRoomID(ctx context.Context, roomID uuid.UUID) (bool, error)
}
