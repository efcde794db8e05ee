package attendance

import (
	"time"

	"github.com/dormsync/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Status represents the attendance status of a log
type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
)

// Action reports which transition an attendance event performed
type Action string

const (
	ActionCheckIn   Action = "check_in"
	ActionCheckOut  Action = "check_out"
	ActionCompleted Action = "completed"
)

// Log is one attendance record per (student, date). The pair is the
// natural key; the persistence layer carries a unique constraint on it.
//
// A log progresses NoLog -> CheckedIn -> CheckedOut and is terminal once
// checked out: further events for the same day return the record
// unchanged with ActionCompleted.
type Log struct {
	shared.BaseEntity
	StudentID uuid.UUID
	Date      time.Time // calendar date, time-of-day zeroed
	CheckIn   *time.Time
	CheckOut  *time.Time
	Status    Status
}

// NewLog creates a checked-in log for the student on the event's calendar
// date. Status defaults to present; late and absent only come from the
// admin override path.
func NewLog(studentID uuid.UUID, eventTime time.Time) *Log {
	checkIn := eventTime
	return &Log{
		BaseEntity: shared.NewBaseEntity(),
		StudentID:  studentID,
		Date:       DateOf(eventTime),
		CheckIn:    &checkIn,
		Status:     StatusPresent,
	}
}

// DateOf truncates a timestamp to its calendar date
func DateOf(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// Apply advances the state machine with an event timestamp and returns the
// transition that happened. A second event before check-out is the
// check-out; events after check-out are no-ops.
func (l *Log) Apply(eventTime time.Time) Action {
	if l.CheckOut != nil {
		return ActionCompleted
	}

	checkOut := eventTime
	l.CheckOut = &checkOut
	l.Status = StatusPresent
	l.UpdatedAt = time.Now()

	return ActionCheckOut
}

// IsTerminal reports whether the log accepts no further events today
func (l *Log) IsTerminal() bool {
	return l.CheckOut != nil
}

// OverridePatch carries an admin correction. Nil fields are left
// untouched; a Clear flag resets the matching time back to null and
// wins over the pointer.
type OverridePatch struct {
	Status        *Status
	CheckIn       *time.Time
	CheckOut      *time.Time
	ClearCheckIn  bool
	ClearCheckOut bool
}

// Override is the administrative escape hatch: it patches fields directly,
// bypassing the event transitions, so an admin can correct a record.
func (l *Log) Override(patch OverridePatch) error {
	if patch.Status != nil {
		if *patch.Status != StatusPresent && *patch.Status != StatusAbsent && *patch.Status != StatusLate {
			return shared.NewDomainError("INVALID_STATUS", "Status must be present, absent, or late")
		}
		l.Status = *patch.Status
	}
	switch {
	case patch.ClearCheckIn:
		l.CheckIn = nil
	case patch.CheckIn != nil:
		l.CheckIn = patch.CheckIn
	}
	switch {
	case patch.ClearCheckOut:
		l.CheckOut = nil
	case patch.CheckOut != nil:
		l.CheckOut = patch.CheckOut
	}
	l.UpdatedAt = time.Now()

	return nil
}
