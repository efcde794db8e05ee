package facility

import (
	"strings"
	"time"

	"github.com/dormsync/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Urgency represents how urgent a maintenance request is
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// RequestStatus represents the workflow status of a maintenance request
type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "pending"
	RequestStatusInProgress RequestStatus = "in-progress"
	RequestStatusResolved   RequestStatus = "resolved"
)

// UnassignedRoomNumber is the snapshot value used when the filing student
// has no room at creation time
const UnassignedRoomNumber = "N/A"

// MaintenanceRequest is a student-filed ticket. RoomNumber is a
// point-in-time snapshot of the student's room at creation; it is
// deliberately never updated when the student later moves.
type MaintenanceRequest struct {
	shared.BaseAggregateRoot
	StudentID           uuid.UUID
	Title               string
	Description         string
	Urgency             Urgency
	Status              RequestStatus
	RoomNumber          string
	AttachmentStorageID string
	AttachmentURL       string
	ResolvedAt          *time.Time
}

// NewMaintenanceRequest creates a pending request. roomNumber is the
// snapshot taken by the caller from the student's current profile; pass
// empty to record UnassignedRoomNumber.
func NewMaintenanceRequest(studentID uuid.UUID, title, description string, urgency Urgency, roomNumber string) (*MaintenanceRequest, error) {
	if studentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STUDENT", "Student reference is required")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title is required")
	}
	if len(title) > 255 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 255 characters")
	}
	if strings.TrimSpace(description) == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description is required")
	}
	if !validUrgency(urgency) {
		return nil, shared.NewDomainError("INVALID_URGENCY", "Urgency must be low, medium, or high")
	}

	roomNumber = strings.TrimSpace(roomNumber)
	if roomNumber == "" {
		roomNumber = UnassignedRoomNumber
	}

	req := &MaintenanceRequest{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		StudentID:         studentID,
		Title:             title,
		Description:       strings.TrimSpace(description),
		Urgency:           urgency,
		Status:            RequestStatusPending,
		RoomNumber:        roomNumber,
	}

	req.AddDomainEvent(NewMaintenanceRequestCreatedEvent(req))

	return req, nil
}

// SetTitle updates the title
func (r *MaintenanceRequest) SetTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title is required")
	}
	if len(title) > 255 {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 255 characters")
	}

	r.Title = title
	r.touch()
	return nil
}

// SetDescription updates the description
func (r *MaintenanceRequest) SetDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description is required")
	}

	r.Description = strings.TrimSpace(description)
	r.touch()
	return nil
}

// SetUrgency updates the urgency
func (r *MaintenanceRequest) SetUrgency(urgency Urgency) error {
	if !validUrgency(urgency) {
		return shared.NewDomainError("INVALID_URGENCY", "Urgency must be low, medium, or high")
	}

	r.Urgency = urgency
	r.touch()
	return nil
}

// SetStatus updates the workflow status. Entering resolved stamps
// ResolvedAt; leaving it clears the stamp.
func (r *MaintenanceRequest) SetStatus(status RequestStatus) error {
	if status != RequestStatusPending && status != RequestStatusInProgress && status != RequestStatusResolved {
		return shared.NewDomainError("INVALID_STATUS", "Status must be pending, in-progress, or resolved")
	}

	if status == RequestStatusResolved && r.Status != RequestStatusResolved {
		now := time.Now()
		r.ResolvedAt = &now
	}
	if status != RequestStatusResolved {
		r.ResolvedAt = nil
	}

	r.Status = status
	r.touch()
	return nil
}

// SetRoomNumber overwrites the snapshot. Only the admin correction path
// uses this; the snapshot is otherwise immutable.
func (r *MaintenanceRequest) SetRoomNumber(roomNumber string) {
	roomNumber = strings.TrimSpace(roomNumber)
	if roomNumber == "" {
		roomNumber = UnassignedRoomNumber
	}
	r.RoomNumber = roomNumber
	r.touch()
}

// AttachFile records the uploaded attachment reference
func (r *MaintenanceRequest) AttachFile(storageID, url string) {
	r.AttachmentStorageID = storageID
	r.AttachmentURL = url
	r.touch()
}

// IsResolved reports whether the request is resolved
func (r *MaintenanceRequest) IsResolved() bool {
	return r.Status == RequestStatusResolved
}

func (r *MaintenanceRequest) touch() {
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

func validUrgency(u Urgency) bool {
	return u == UrgencyLow || u == UrgencyMedium || u == UrgencyHigh
}
