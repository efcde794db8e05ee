package identity

import (
	"time"

	"github.com/dormsync/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// LoginInput contains the input for login. Identifier may be a student
// identifier or an email address.
type LoginInput struct {
	Identifier string
	Password   string
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	TokenType string
	User      UserInfo
}

// LogoutInput contains the input for logout
type LogoutInput struct {
	UserID   uuid.UUID
	TokenJTI string
	TokenTTL time.Duration
}

// UserInfo contains basic user information returned after login
type UserInfo struct {
	ID        uuid.UUID
	Role      identity.Role
	FirstName string
	LastName  string
	FullName  string
	Email     string
	StudentID *string
}

// CurrentUserResult contains the authenticated user with profile and room
type CurrentUserResult struct {
	User    UserInfo
	Profile *ProfileInfo
}

// ProfileInfo is the student profile portion of a student response
type ProfileInfo struct {
	RoomID                *uuid.UUID
	RoomNumber            string
	PhoneNumber           string
	EmergencyContactName  string
	EmergencyContactPhone string
	EnrollmentDate        time.Time
	Status                identity.ProfileStatus
}

// CreateStudentInput contains the input for enrolling a student.
// StudentID is optional; left empty, the next identifier in the current
// year's sequence is generated.
type CreateStudentInput struct {
	FirstName             string
	LastName              string
	MiddleInitial         string
	Email                 string
	Password              string
	StudentID             *string
	RoomID                *uuid.UUID
	PhoneNumber           string
	EmergencyContactName  string
	EmergencyContactPhone string
	EnrollmentDate        *time.Time
}

// UpdateStudentInput contains the input for updating a student.
// Nil pointers leave the corresponding field untouched. RemoveRoom
// unassigns the student; it wins over RoomID when both are set.
type UpdateStudentInput struct {
	UserID                uuid.UUID
	FirstName             *string
	LastName              *string
	MiddleInitial         *string
	Email                 *string
	Password              *string
	RoomID                *uuid.UUID
	RemoveRoom            bool
	PhoneNumber           *string
	EmergencyContactName  *string
	EmergencyContactPhone *string
	Status                *identity.ProfileStatus
}

// ListStudentsInput contains filter and pagination options
type ListStudentsInput struct {
	Keyword  string
	Status   *identity.ProfileStatus
	Page     int
	PageSize int
}

// StudentResult is a student user with their profile
type StudentResult struct {
	User    UserInfo
	Profile *ProfileInfo
}

func toUserInfo(user *identity.User) UserInfo {
	return UserInfo{
		ID:        user.ID,
		Role:      user.Role,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		FullName:  user.FullName,
		Email:     user.Email,
		StudentID: user.StudentID,
	}
}

func toProfileInfo(profile *identity.StudentProfile) *ProfileInfo {
	if profile == nil {
		return nil
	}
	return &ProfileInfo{
		RoomID:                profile.RoomID,
		RoomNumber:            profile.RoomNumber,
		PhoneNumber:           profile.PhoneNumber,
		EmergencyContactName:  profile.EmergencyContactName,
		EmergencyContactPhone: profile.EmergencyContactPhone,
		EnrollmentDate:        profile.EnrollmentDate,
		Status:                profile.Status,
	}
}
