package identity

import (
	"context"

	"github.com/dormsync/backend/internal/domain/housing"
	"github.com/dormsync/backend/internal/domain/identity"
)

// TransactionScope provides transactional access to the repositories
// enrollment touches. When a function is executed within a transaction
// scope, all repository operations are part of the same database
// transaction and commit or roll back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos EnrollmentRepositories) error) error
}

// EnrollmentRepositories provides access to the repositories involved in
// creating or updating a student within one transaction. The room
// repository is included so the room row lock and the profile write share
// the transaction.
type EnrollmentRepositories interface {
	// Users returns the user repository scoped to the current transaction
	Users() identity.UserRepository
	// Profiles returns the profile repository scoped to the current transaction
	Profiles() identity.StudentProfileRepository
	// Rooms returns the room repository scoped to the current transaction
	Rooms() housing.RoomRepository
}

// NoOpTransactionScope runs the function against plain repositories
// without a transaction. Useful for tests.
type NoOpTransactionScope struct {
	userRepo    identity.UserRepository
	profileRepo identity.StudentProfileRepository
	roomRepo    housing.RoomRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	userRepo identity.UserRepository,
	profileRepo identity.StudentProfileRepository,
	roomRepo housing.RoomRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		roomRepo:    roomRepo,
	}
}

// Execute runs the function with the untransacted repositories
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos EnrollmentRepositories) error) error {
	return fn(s)
}

// Users returns the user repository
func (s *NoOpTransactionScope) Users() identity.UserRepository { return s.userRepo }

// Profiles returns the profile repository
func (s *NoOpTransactionScope) Profiles() identity.StudentProfileRepository { return s.profileRepo }

// Rooms returns the room repository
func (s *NoOpTransactionScope) Rooms() housing.RoomRepository { return s.roomRepo }

var (
	_ TransactionScope       = (*NoOpTransactionScope)(nil)
	_ EnrollmentRepositories = (*NoOpTransactionScope)(nil)
)
