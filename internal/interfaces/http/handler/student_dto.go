package handler

import (
	"errors"
	"time"

	identityapp "github.com/dormsync/backend/internal/application/identity"
	"github.com/dormsync/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// =====================
// Student Request DTOs
// =====================

// CreateStudentRequest represents a request to enroll a student.
// StudentID left empty gets the next identifier in the current year's
// sequence. EnrollmentDate uses the 2006-01-02 format.
type CreateStudentRequest struct {
	FirstName             string  `json:"first_name" binding:"required,min=1,max=100"`
	LastName              string  `json:"last_name" binding:"required,min=1,max=100"`
	MiddleInitial         string  `json:"middle_initial" binding:"max=5"`
	Email                 string  `json:"email" binding:"required,email,max=255"`
	Password              string  `json:"password" binding:"required,min=8,max=128"`
	StudentID             *string `json:"student_id" binding:"omitempty,max=50"`
	RoomID                *string `json:"room_id" binding:"omitempty,uuid"`
	PhoneNumber           string  `json:"phone_number" binding:"max=50"`
	EmergencyContactName  string  `json:"emergency_contact_name" binding:"max=200"`
	EmergencyContactPhone string  `json:"emergency_contact_phone" binding:"max=50"`
	EnrollmentDate        string  `json:"enrollment_date" binding:"omitempty,datetime=2006-01-02"`
}

func (r CreateStudentRequest) toInput() (identityapp.CreateStudentInput, error) {
	input := identityapp.CreateStudentInput{
		FirstName:             r.FirstName,
		LastName:              r.LastName,
		MiddleInitial:         r.MiddleInitial,
		Email:                 r.Email,
		Password:              r.Password,
		StudentID:             r.StudentID,
		PhoneNumber:           r.PhoneNumber,
		EmergencyContactName:  r.EmergencyContactName,
		EmergencyContactPhone: r.EmergencyContactPhone,
	}
	if r.RoomID != nil {
		roomID, err := uuid.Parse(*r.RoomID)
		if err != nil {
			return input, errors.New("invalid room_id format")
		}
		input.RoomID = &roomID
	}
	if r.EnrollmentDate != "" {
		date, err := time.Parse("2006-01-02", r.EnrollmentDate)
		if err != nil {
			return input, errors.New("invalid enrollment_date format")
		}
		input.EnrollmentDate = &date
	}
	return input, nil
}

// UpdateStudentRequest represents a request to update a student.
// Omitted fields stay unchanged. RemoveRoom unassigns the student and
// wins over RoomID when both are set.
type UpdateStudentRequest struct {
	FirstName             *string `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName              *string `json:"last_name" binding:"omitempty,min=1,max=100"`
	MiddleInitial         *string `json:"middle_initial" binding:"omitempty,max=5"`
	Email                 *string `json:"email" binding:"omitempty,email,max=255"`
	Password              *string `json:"password" binding:"omitempty,min=8,max=128"`
	RoomID                *string `json:"room_id" binding:"omitempty,uuid"`
	RemoveRoom            bool    `json:"remove_room"`
	PhoneNumber           *string `json:"phone_number" binding:"omitempty,max=50"`
	EmergencyContactName  *string `json:"emergency_contact_name" binding:"omitempty,max=200"`
	EmergencyContactPhone *string `json:"emergency_contact_phone" binding:"omitempty,max=50"`
	Status                *string `json:"status" binding:"omitempty,oneof=active inactive"`
}

func (r UpdateStudentRequest) toInput(userID uuid.UUID) (identityapp.UpdateStudentInput, error) {
	input := identityapp.UpdateStudentInput{
		UserID:                userID,
		FirstName:             r.FirstName,
		LastName:              r.LastName,
		MiddleInitial:         r.MiddleInitial,
		Email:                 r.Email,
		Password:              r.Password,
		RemoveRoom:            r.RemoveRoom,
		PhoneNumber:           r.PhoneNumber,
		EmergencyContactName:  r.EmergencyContactName,
		EmergencyContactPhone: r.EmergencyContactPhone,
	}
	if r.RoomID != nil {
		roomID, err := uuid.Parse(*r.RoomID)
		if err != nil {
			return input, errors.New("invalid room_id format")
		}
		input.RoomID = &roomID
	}
	if r.Status != nil {
		status := identity.ProfileStatus(*r.Status)
		input.Status = &status
	}
	return input, nil
}

// RegisterPushTokenRequest represents a request to register a device push token
type RegisterPushTokenRequest struct {
	Token string `json:"token" binding:"required,max=500"`
}

// =====================
// Student Response DTOs
// =====================

// ProfileResponse represents the student profile portion of a student response
type ProfileResponse struct {
	RoomID                *string   `json:"room_id"`
	RoomNumber            string    `json:"room_number"`
	PhoneNumber           string    `json:"phone_number"`
	EmergencyContactName  string    `json:"emergency_contact_name"`
	EmergencyContactPhone string    `json:"emergency_contact_phone"`
	EnrollmentDate        time.Time `json:"enrollment_date"`
	Status                string    `json:"status"`
}

// StudentResponse represents a student in responses
type StudentResponse struct {
	User    AuthUserResponse `json:"user"`
	Profile *ProfileResponse `json:"profile"`
}

func toProfileResponse(profile *identityapp.ProfileInfo) *ProfileResponse {
	if profile == nil {
		return nil
	}
	resp := &ProfileResponse{
		RoomNumber:            profile.RoomNumber,
		PhoneNumber:           profile.PhoneNumber,
		EmergencyContactName:  profile.EmergencyContactName,
		EmergencyContactPhone: profile.EmergencyContactPhone,
		EnrollmentDate:        profile.EnrollmentDate,
		Status:                string(profile.Status),
	}
	if profile.RoomID != nil {
		roomID := profile.RoomID.String()
		resp.RoomID = &roomID
	}
	return resp
}

func toStudentResponse(result *identityapp.StudentResult) StudentResponse {
	return StudentResponse{
		User:    toAuthUserResponse(result.User),
		Profile: toProfileResponse(result.Profile),
	}
}
