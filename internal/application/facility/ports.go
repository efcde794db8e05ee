package facility

import (
	"context"
	"io"
	"time"
)

// ObjectStorage stores uploaded maintenance attachments. Implemented by
// the infrastructure storage layer.
type ObjectStorage interface {
	Upload(ctx context.Context, content io.Reader, filename, contentType, category string) (storageID, fileURL string, err error)
}

// CalendarEvent is the payload synced to the external calendar for a
// cleaning slot
type CalendarEvent struct {
	Title string
	Date  time.Time
	Notes string
}

// CalendarService mirrors cleaning schedules into an external calendar.
// A nil CalendarService means sync is not configured and is skipped.
type CalendarService interface {
	CreateEvent(ctx context.Context, event CalendarEvent) (string, error)
	UpdateEvent(ctx context.Context, eventID string, event CalendarEvent) error
	DeleteEvent(ctx context.Context, eventID string) error
}
