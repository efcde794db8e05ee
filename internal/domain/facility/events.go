package facility

import (
	"github.com/dormsync/backend/internal/domain/shared"
	"github.com/google/uuid"
)

const (
	AggregateTypeMaintenanceRequest = "MaintenanceRequest"
	AggregateTypeAnnouncement       = "Announcement"
)

const (
	EventTypeMaintenanceRequestCreated = "MaintenanceRequestCreated"
	EventTypeUrgentAnnouncementPosted  = "UrgentAnnouncementPosted"
)

// MaintenanceRequestCreatedEvent signals a new ticket so admins can be
// alerted of high-urgency ones
type MaintenanceRequestCreatedEvent struct {
	shared.BaseDomainEvent
	StudentID   uuid.UUID `json:"student_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Urgency     Urgency   `json:"urgency"`
	RoomNumber  string    `json:"room_number"`
}

func NewMaintenanceRequestCreatedEvent(req *MaintenanceRequest) *MaintenanceRequestCreatedEvent {
	return &MaintenanceRequestCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMaintenanceRequestCreated, AggregateTypeMaintenanceRequest, req.ID),
		StudentID:       req.StudentID,
		Title:           req.Title,
		Description:     req.Description,
		Urgency:         req.Urgency,
		RoomNumber:      req.RoomNumber,
	}
}

// UrgentAnnouncementPostedEvent triggers the push fan-out to every
// student with a registered push target
type UrgentAnnouncementPostedEvent struct {
	shared.BaseDomainEvent
	Title   string `json:"title"`
	Content string `json:"content"`
}

func NewUrgentAnnouncementPostedEvent(a *Announcement) *UrgentAnnouncementPostedEvent {
	return &UrgentAnnouncementPostedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUrgentAnnouncementPosted, AggregateTypeAnnouncement, a.ID),
		Title:           a.Title,
		Content:         a.Content,
	}
}
