package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/dormsync/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role represents the role of a user. It is immutable after creation.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

// Password cost for bcrypt
const bcryptCost = 12

// StudentIDPattern matches the external-facing student identifier format
// YYYY-NNN. The numeric suffix is at least three digits but may grow beyond
// three once a year's sequence passes 999.
var StudentIDPattern = regexp.MustCompile(`^\d{4}-\d{3,}$`)

// User represents a user account in the system.
// It is the aggregate root for identity operations.
type User struct {
	shared.BaseAggregateRoot
	Role          Role
	FirstName     string
	LastName      string
	MiddleInitial string
	FullName      string
	Email         string
	StudentID     *string // nil for admins and not-yet-enrolled accounts
	PasswordHash  string
	PushToken     string // registered push target, empty when none
}

// NewUser creates a new user with the given role and credentials
func NewUser(role Role, firstName, lastName, middleInitial, email, password string) (*User, error) {
	if role != RoleAdmin && role != RoleStudent {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role must be admin or student")
	}
	if err := validateName(firstName, "First name"); err != nil {
		return nil, err
	}
	if err := validateName(lastName, "Last name"); err != nil {
		return nil, err
	}
	if len(middleInitial) > 5 {
		return nil, shared.NewDomainError("INVALID_MIDDLE_INITIAL", "Middle initial cannot exceed 5 characters")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Role:              role,
		FirstName:         strings.TrimSpace(firstName),
		LastName:          strings.TrimSpace(lastName),
		MiddleInitial:     strings.TrimSpace(middleInitial),
		Email:             strings.ToLower(strings.TrimSpace(email)),
		PasswordHash:      passwordHash,
	}
	user.FullName = ComposeFullName(user.FirstName, user.MiddleInitial, user.LastName)

	user.AddDomainEvent(NewUserCreatedEvent(user))

	return user, nil
}

// NewStudent creates a new student user
func NewStudent(firstName, lastName, middleInitial, email, password string) (*User, error) {
	return NewUser(RoleStudent, firstName, lastName, middleInitial, email, password)
}

// ComposeFullName builds the display name from its parts, inserting the
// dotted middle initial when present.
func ComposeFullName(firstName, middleInitial, lastName string) string {
	if middleInitial != "" {
		return firstName + " " + middleInitial + ". " + lastName
	}
	return firstName + " " + lastName
}

// SetName updates the user's name parts and recomputes the full name
func (u *User) SetName(firstName, lastName, middleInitial string) error {
	if err := validateName(firstName, "First name"); err != nil {
		return err
	}
	if err := validateName(lastName, "Last name"); err != nil {
		return err
	}
	if len(middleInitial) > 5 {
		return shared.NewDomainError("INVALID_MIDDLE_INITIAL", "Middle initial cannot exceed 5 characters")
	}

	u.FirstName = strings.TrimSpace(firstName)
	u.LastName = strings.TrimSpace(lastName)
	u.MiddleInitial = strings.TrimSpace(middleInitial)
	u.FullName = ComposeFullName(u.FirstName, u.MiddleInitial, u.LastName)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// SetEmail sets the user's email
func (u *User) SetEmail(email string) error {
	if err := validateEmail(email); err != nil {
		return err
	}

	u.Email = strings.ToLower(strings.TrimSpace(email))
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// AssignStudentID attaches a student identifier to the user.
// Identifiers are never reused, so an already-assigned ID cannot be replaced.
func (u *User) AssignStudentID(studentID string) error {
	if u.StudentID != nil && *u.StudentID != "" {
		return shared.NewDomainError("STUDENT_ID_ASSIGNED", "User already has a student identifier")
	}
	if !StudentIDPattern.MatchString(studentID) {
		return shared.NewDomainError("INVALID_STUDENT_ID", "Student identifier must match YYYY-NNN")
	}

	u.StudentID = &studentID
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// SetPassword sets a new password (admin reset, no old password check)
func (u *User) SetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// RegisterPushTarget records a push-notification target for the user
func (u *User) RegisterPushTarget(token string) {
	u.PushToken = strings.TrimSpace(token)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// HasPushTarget reports whether the user can receive push notifications
func (u *User) HasPushTarget() bool {
	return u.PushToken != ""
}

// IsAdmin returns true for administrator accounts
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsStudent returns true for student accounts
func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}

// Validation functions

func validateName(name, label string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", label+" cannot be empty")
	}
	if len(name) > 255 {
		return shared.NewDomainError("INVALID_NAME", label+" cannot exceed 255 characters")
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}

	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}

	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
