package facility

import (
	"strings"
	"time"

	"github.com/dormsync/backend/internal/domain/shared"
)

// ScheduleStatus represents the completion status of a cleaning slot
type ScheduleStatus string

const (
	ScheduleStatusPending   ScheduleStatus = "pending"
	ScheduleStatusCompleted ScheduleStatus = "completed"
)

// CleaningSchedule is an assigned cleaning slot. CalendarEventID links
// the slot to an external calendar entry when calendar sync is
// configured; empty otherwise.
type CleaningSchedule struct {
	shared.BaseEntity
	Area            string
	AssignedTo      string
	ScheduledDate   time.Time
	Status          ScheduleStatus
	Notes           string
	CalendarEventID string
}

func NewCleaningSchedule(area, assignedTo string, scheduledDate time.Time) (*CleaningSchedule, error) {
	area = strings.TrimSpace(area)
	if area == "" {
		return nil, shared.NewDomainError("INVALID_AREA", "Area is required")
	}
	assignedTo = strings.TrimSpace(assignedTo)
	if assignedTo == "" {
		return nil, shared.NewDomainError("INVALID_ASSIGNEE", "Assignee is required")
	}
	if scheduledDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Scheduled date is required")
	}

	return &CleaningSchedule{
		BaseEntity:    shared.NewBaseEntity(),
		Area:          area,
		AssignedTo:    assignedTo,
		ScheduledDate: scheduledDate,
		Status:        ScheduleStatusPending,
	}, nil
}

func (s *CleaningSchedule) SetArea(area string) error {
	area = strings.TrimSpace(area)
	if area == "" {
		return shared.NewDomainError("INVALID_AREA", "Area is required")
	}

	s.Area = area
	s.UpdatedAt = time.Now()
	return nil
}

func (s *CleaningSchedule) SetAssignedTo(assignedTo string) error {
	assignedTo = strings.TrimSpace(assignedTo)
	if assignedTo == "" {
		return shared.NewDomainError("INVALID_ASSIGNEE", "Assignee is required")
	}

	s.AssignedTo = assignedTo
	s.UpdatedAt = time.Now()
	return nil
}

func (s *CleaningSchedule) SetScheduledDate(date time.Time) error {
	if date.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Scheduled date is required")
	}

	s.ScheduledDate = date
	s.UpdatedAt = time.Now()
	return nil
}

func (s *CleaningSchedule) SetStatus(status ScheduleStatus) error {
	if status != ScheduleStatusPending && status != ScheduleStatusCompleted {
		return shared.NewDomainError("INVALID_STATUS", "Status must be pending or completed")
	}

	s.Status = status
	s.UpdatedAt = time.Now()
	return nil
}

func (s *CleaningSchedule) SetNotes(notes string) {
	s.Notes = strings.TrimSpace(notes)
	s.UpdatedAt = time.Now()
}

// LinkCalendarEvent records the external calendar entry id
func (s *CleaningSchedule) LinkCalendarEvent(eventID string) {
	s.CalendarEventID = eventID
	s.UpdatedAt = time.Now()
}

// UnlinkCalendarEvent clears the external calendar reference
func (s *CleaningSchedule) UnlinkCalendarEvent() {
	s.CalendarEventID = ""
	s.UpdatedAt = time.Now()
}
