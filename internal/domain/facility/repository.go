package facility

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MaintenanceRequestFilter narrows maintenance request listings
type MaintenanceRequestFilter struct {
	StudentID *uuid.UUID
	Status    *RequestStatus
	Urgency   *Urgency
}

// MaintenanceRequestRepository defines persistence for maintenance requests
type MaintenanceRequestRepository interface {
	Create(ctx context.Context, req *MaintenanceRequest) error
	Update(ctx context.Context, req *MaintenanceRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*MaintenanceRequest, error)
	FindAll(ctx context.Context, filter MaintenanceRequestFilter) ([]*MaintenanceRequest, error)
	CountByStatus(ctx context.Context, status RequestStatus) (int64, error)
	// FindUrgentUnresolved returns the newest high-urgency requests that
	// are not yet resolved, at most limit of them
	FindUrgentUnresolved(ctx context.Context, limit int) ([]*MaintenanceRequest, error)
}

// CleaningScheduleRepository defines persistence for cleaning schedules
type CleaningScheduleRepository interface {
	Create(ctx context.Context, schedule *CleaningSchedule) error
	Update(ctx context.Context, schedule *CleaningSchedule) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*CleaningSchedule, error)
	FindAll(ctx context.Context) ([]*CleaningSchedule, error)
	FindByDateRange(ctx context.Context, from, to time.Time) ([]*CleaningSchedule, error)
	CountByStatus(ctx context.Context, status ScheduleStatus) (int64, error)
}

// AnnouncementRepository defines persistence for announcements
type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *Announcement) error
	Update(ctx context.Context, announcement *Announcement) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Announcement, error)
	FindAll(ctx context.Context) ([]*Announcement, error)
	// FindRecent returns the newest announcements, at most limit of them
	FindRecent(ctx context.Context, limit int) ([]*Announcement, error)
}
