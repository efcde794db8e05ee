package attendance

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// LogRepository defines the interface for attendance log persistence
type LogRepository interface {
	// Create creates a new log. Implementations surface the unique
	// (student_id, date) constraint as shared.ErrAlreadyExists.
	Create(ctx context.Context, log *Log) error

	// Update updates an existing log
	Update(ctx context.Context, log *Log) error

	// FindByID finds a log by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Log, error)

	// FindByStudentAndDate finds the log for a (student, date) pair,
	// shared.ErrNotFound when none exists
	FindByStudentAndDate(ctx context.Context, studentID uuid.UUID, date time.Time) (*Log, error)

	// FindByDate returns all logs for a calendar date
	FindByDate(ctx context.Context, date time.Time) ([]*Log, error)

	// FindByStudent returns all logs for a student, newest first
	FindByStudent(ctx context.Context, studentID uuid.UUID) ([]*Log, error)
}
