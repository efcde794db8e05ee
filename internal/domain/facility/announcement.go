package facility

import (
	"strings"
	"time"

	"github.com/dormsync/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Priority represents announcement priority
type Priority string

const (
	PriorityNormal    Priority = "normal"
	PriorityImportant Priority = "important"
	PriorityUrgent    Priority = "urgent"
)

// Announcement is an admin-posted notice. Urgent announcements raise an
// event that fans out push notifications on creation only; editing an
// announcement to urgent later does not re-notify.
type Announcement struct {
	shared.BaseAggregateRoot
	Title     string
	Content   string
	Priority  Priority
	CreatedBy uuid.UUID
}

func NewAnnouncement(title, content string, priority Priority, createdBy uuid.UUID) (*Announcement, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title is required")
	}
	if len(title) > 255 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 255 characters")
	}
	if strings.TrimSpace(content) == "" {
		return nil, shared.NewDomainError("INVALID_CONTENT", "Content is required")
	}
	if !validPriority(priority) {
		return nil, shared.NewDomainError("INVALID_PRIORITY", "Priority must be normal, important, or urgent")
	}
	if createdBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CREATOR", "Creator reference is required")
	}

	a := &Announcement{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             title,
		Content:           strings.TrimSpace(content),
		Priority:          priority,
		CreatedBy:         createdBy,
	}

	if a.Priority == PriorityUrgent {
		a.AddDomainEvent(NewUrgentAnnouncementPostedEvent(a))
	}

	return a, nil
}

func (a *Announcement) SetTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title is required")
	}
	if len(title) > 255 {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 255 characters")
	}

	a.Title = title
	a.touch()
	return nil
}

func (a *Announcement) SetContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return shared.NewDomainError("INVALID_CONTENT", "Content is required")
	}

	a.Content = strings.TrimSpace(content)
	a.touch()
	return nil
}

func (a *Announcement) SetPriority(priority Priority) error {
	if !validPriority(priority) {
		return shared.NewDomainError("INVALID_PRIORITY", "Priority must be normal, important, or urgent")
	}

	a.Priority = priority
	a.touch()
	return nil
}

func (a *Announcement) touch() {
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

func validPriority(p Priority) bool {
	return p == PriorityNormal || p == PriorityImportant || p == PriorityUrgent
}
