package identity

import (
	"strings"
	"time"

	"github.com/dormsync/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProfileStatus represents the enrollment status of a student profile
type ProfileStatus string

const (
	ProfileStatusActive   ProfileStatus = "active"
	ProfileStatusInactive ProfileStatus = "inactive"
)

// StudentProfile is the 1:1 extension of a student User. The room reference
// may be nil (unassigned); RoomNumber is a denormalized snapshot of the
// room code, written together with RoomID by the occupancy service.
type StudentProfile struct {
	shared.BaseEntity
	UserID                uuid.UUID
	RoomID                *uuid.UUID
	RoomNumber            string
	PhoneNumber           string
	EmergencyContactName  string
	EmergencyContactPhone string
	EnrollmentDate        time.Time
	Status                ProfileStatus
}

// NewStudentProfile creates a profile for a student user. The profile
// starts active and unassigned; room placement goes through the housing
// occupancy service.
func NewStudentProfile(userID uuid.UUID) *StudentProfile {
	return &StudentProfile{
		BaseEntity:     shared.NewBaseEntity(),
		UserID:         userID,
		EnrollmentDate: time.Now(),
		Status:         ProfileStatusActive,
	}
}

// SetContact updates phone and emergency contact fields
func (p *StudentProfile) SetContact(phone, contactName, contactPhone string) error {
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}
	if len(contactName) > 255 {
		return shared.NewDomainError("INVALID_CONTACT", "Emergency contact name cannot exceed 255 characters")
	}
	if len(contactPhone) > 50 {
		return shared.NewDomainError("INVALID_CONTACT", "Emergency contact phone cannot exceed 50 characters")
	}

	p.PhoneNumber = strings.TrimSpace(phone)
	p.EmergencyContactName = strings.TrimSpace(contactName)
	p.EmergencyContactPhone = strings.TrimSpace(contactPhone)
	p.UpdatedAt = time.Now()

	return nil
}

// SetStatus sets the profile status
func (p *StudentProfile) SetStatus(status ProfileStatus) error {
	if status != ProfileStatusActive && status != ProfileStatusInactive {
		return shared.NewDomainError("INVALID_STATUS", "Status must be active or inactive")
	}

	p.Status = status
	p.UpdatedAt = time.Now()

	return nil
}

// AssignRoom writes the room reference and the room-code snapshot together.
// Capacity checking happens in the housing occupancy service before this
// is called.
func (p *StudentProfile) AssignRoom(roomID uuid.UUID, roomCode string) {
	p.RoomID = &roomID
	p.RoomNumber = roomCode
	p.UpdatedAt = time.Now()
}

// UnassignRoom clears the room reference. The room-code snapshot is kept
// empty as well; historical snapshots live on maintenance requests.
func (p *StudentProfile) UnassignRoom() {
	p.RoomID = nil
	p.RoomNumber = ""
	p.UpdatedAt = time.Now()
}
