package identity

import (
	"github.com/dormsync/backend/internal/domain/shared"
)

// Aggregate type constant for User
const AggregateTypeUser = "User"

// User domain event types
const (
	EventTypeUserCreated   = "UserCreated"
	EventTypeUserEnrolled  = "UserEnrolled"
	EventTypeUserDeleted   = "UserDeleted"
)

// UserCreatedEvent is published when a user account is created
type UserCreatedEvent struct {
	shared.BaseDomainEvent
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// NewUserCreatedEvent creates a new UserCreatedEvent
func NewUserCreatedEvent(user *User) *UserCreatedEvent {
	return &UserCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserCreated, AggregateTypeUser, user.ID),
		Email:           user.Email,
		Role:            user.Role,
	}
}

// UserEnrolledEvent is published when a student receives an identifier
// and a profile during enrollment
type UserEnrolledEvent struct {
	shared.BaseDomainEvent
	Email     string `json:"email"`
	StudentID string `json:"student_id"`
}

// NewUserEnrolledEvent creates a new UserEnrolledEvent
func NewUserEnrolledEvent(user *User, studentID string) *UserEnrolledEvent {
	return &UserEnrolledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserEnrolled, AggregateTypeUser, user.ID),
		Email:           user.Email,
		StudentID:       studentID,
	}
}
