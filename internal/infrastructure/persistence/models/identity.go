package models

import (
	"time"

	"github.com/dormsync/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	AggregateModel
	Role          identity.Role `gorm:"type:varchar(20);not null;index"`
	FirstName     string        `gorm:"type:varchar(100);not null"`
	LastName      string        `gorm:"type:varchar(100);not null"`
	MiddleInitial string        `gorm:"type:varchar(5)"`
	FullName      string        `gorm:"type:varchar(255);not null"`
	Email         string        `gorm:"type:varchar(200);not null;uniqueIndex:idx_users_email"`
	StudentID     *string       `gorm:"type:varchar(20);uniqueIndex:idx_users_student_id"`
	PasswordHash  string        `gorm:"type:varchar(255);not null"`
	PushToken     string        `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Role:              m.Role,
		FirstName:         m.FirstName,
		LastName:          m.LastName,
		MiddleInitial:     m.MiddleInitial,
		FullName:          m.FullName,
		Email:             m.Email,
		StudentID:         m.StudentID,
		PasswordHash:      m.PasswordHash,
		PushToken:         m.PushToken,
	}
}

// FromDomain populates the persistence model from a domain User entity
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Role = u.Role
	m.FirstName = u.FirstName
	m.LastName = u.LastName
	m.MiddleInitial = u.MiddleInitial
	m.FullName = u.FullName
	m.Email = u.Email
	m.StudentID = u.StudentID
	m.PasswordHash = u.PasswordHash
	m.PushToken = u.PushToken
}

// StudentProfileModel is the persistence model for the StudentProfile
// domain entity.
type StudentProfileModel struct {
	BaseModel
	UserID                uuid.UUID              `gorm:"type:uuid;not null;uniqueIndex:idx_profiles_user_id"`
	RoomID                *uuid.UUID             `gorm:"type:uuid;index"`
	RoomNumber            string                 `gorm:"type:varchar(20)"`
	PhoneNumber           string                 `gorm:"type:varchar(50)"`
	EmergencyContactName  string                 `gorm:"type:varchar(200)"`
	EmergencyContactPhone string                 `gorm:"type:varchar(50)"`
	EnrollmentDate        time.Time              `gorm:"not null"`
	Status                identity.ProfileStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (StudentProfileModel) TableName() string {
	return "student_profiles"
}

// ToDomain converts the persistence model to a domain StudentProfile entity
func (m *StudentProfileModel) ToDomain() *identity.StudentProfile {
	return &identity.StudentProfile{
		BaseEntity:            m.BaseModel.ToDomain(),
		UserID:                m.UserID,
		RoomID:                m.RoomID,
		RoomNumber:            m.RoomNumber,
		PhoneNumber:           m.PhoneNumber,
		EmergencyContactName:  m.EmergencyContactName,
		EmergencyContactPhone: m.EmergencyContactPhone,
		EnrollmentDate:        m.EnrollmentDate,
		Status:                m.Status,
	}
}

// FromDomain populates the persistence model from a domain StudentProfile entity
func (m *StudentProfileModel) FromDomain(p *identity.StudentProfile) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.UserID = p.UserID
	m.RoomID = p.RoomID
	m.RoomNumber = p.RoomNumber
	m.PhoneNumber = p.PhoneNumber
	m.EmergencyContactName = p.EmergencyContactName
	m.EmergencyContactPhone = p.EmergencyContactPhone
	m.EnrollmentDate = p.EnrollmentDate
	m.Status = p.Status
}
