package models

import (
	"time"

	"github.com/dormsync/backend/internal/domain/facility"
	"github.com/google/uuid"
)

// MaintenanceRequestModel is the persistence model for the
// MaintenanceRequest domain entity.
type MaintenanceRequestModel struct {
	AggregateModel
	StudentID           uuid.UUID               `gorm:"type:uuid;not null;index"`
	Title               string                  `gorm:"type:varchar(255);not null"`
	Description         string                  `gorm:"type:text;not null"`
	Urgency             facility.Urgency        `gorm:"type:varchar(20);not null;index"`
	Status              facility.RequestStatus  `gorm:"type:varchar(20);not null;default:'pending';index"`
	RoomNumber          string                  `gorm:"type:varchar(20);not null"`
	AttachmentStorageID string                  `gorm:"type:varchar(255)"`
	AttachmentURL       string                  `gorm:"type:varchar(500)"`
	ResolvedAt          *time.Time
}

// TableName returns the table name for GORM
func (MaintenanceRequestModel) TableName() string {
	return "maintenance_requests"
}

// ToDomain converts the persistence model to a domain MaintenanceRequest entity
func (m *MaintenanceRequestModel) ToDomain() *facility.MaintenanceRequest {
	return &facility.MaintenanceRequest{
		BaseAggregateRoot:   m.ToDomainAggregateRoot(),
		StudentID:           m.StudentID,
		Title:               m.Title,
		Description:         m.Description,
		Urgency:             m.Urgency,
		Status:              m.Status,
		RoomNumber:          m.RoomNumber,
		AttachmentStorageID: m.AttachmentStorageID,
		AttachmentURL:       m.AttachmentURL,
		ResolvedAt:          m.ResolvedAt,
	}
}

// FromDomain populates the persistence model from a domain MaintenanceRequest entity
func (m *MaintenanceRequestModel) FromDomain(r *facility.MaintenanceRequest) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.StudentID = r.StudentID
	m.Title = r.Title
	m.Description = r.Description
	m.Urgency = r.Urgency
	m.Status = r.Status
	m.RoomNumber = r.RoomNumber
	m.AttachmentStorageID = r.AttachmentStorageID
	m.AttachmentURL = r.AttachmentURL
	m.ResolvedAt = r.ResolvedAt
}

// CleaningScheduleModel is the persistence model for the
// CleaningSchedule domain entity.
type CleaningScheduleModel struct {
	BaseModel
	Area            string                  `gorm:"type:varchar(255);not null"`
	AssignedTo      string                  `gorm:"type:varchar(200);not null"`
	ScheduledDate   time.Time               `gorm:"not null;index"`
	Status          facility.ScheduleStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	Notes           string                  `gorm:"type:text"`
	CalendarEventID string                  `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (CleaningScheduleModel) TableName() string {
	return "cleaning_schedules"
}

// ToDomain converts the persistence model to a domain CleaningSchedule entity
func (m *CleaningScheduleModel) ToDomain() *facility.CleaningSchedule {
	return &facility.CleaningSchedule{
		BaseEntity:      m.BaseModel.ToDomain(),
		Area:            m.Area,
		AssignedTo:      m.AssignedTo,
		ScheduledDate:   m.ScheduledDate,
		Status:          m.Status,
		Notes:           m.Notes,
		CalendarEventID: m.CalendarEventID,
	}
}

// FromDomain populates the persistence model from a domain CleaningSchedule entity
func (m *CleaningScheduleModel) FromDomain(s *facility.CleaningSchedule) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.Area = s.Area
	m.AssignedTo = s.AssignedTo
	m.ScheduledDate = s.ScheduledDate
	m.Status = s.Status
	m.Notes = s.Notes
	m.CalendarEventID = s.CalendarEventID
}

// AnnouncementModel is the persistence model for the Announcement
// domain entity.
type AnnouncementModel struct {
	AggregateModel
	Title     string            `gorm:"type:varchar(255);not null"`
	Content   string            `gorm:"type:text;not null"`
	Priority  facility.Priority `gorm:"type:varchar(20);not null;default:'normal';index"`
	CreatedBy uuid.UUID         `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (AnnouncementModel) TableName() string {
	return "announcements"
}

// ToDomain converts the persistence model to a domain Announcement entity
func (m *AnnouncementModel) ToDomain() *facility.Announcement {
	return &facility.Announcement{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Title:             m.Title,
		Content:           m.Content,
		Priority:          m.Priority,
		CreatedBy:         m.CreatedBy,
	}
}

// FromDomain populates the persistence model from a domain Announcement entity
func (m *AnnouncementModel) FromDomain(a *facility.Announcement) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.Title = a.Title
	m.Content = a.Content
	m.Priority = a.Priority
	m.CreatedBy = a.CreatedBy
}
