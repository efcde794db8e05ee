package facility

import (
	"context"
	"time"

	"github.com/dormsync/backend/internal/domain/facility"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CleaningService handles cleaning schedule operations. Calendar sync is
// best-effort: a nil calendar skips it, and sync failures only log.
type CleaningService struct {
	scheduleRepo facility.CleaningScheduleRepository
	calendar     CalendarService
	logger       *zap.Logger
}

// NewCleaningService creates a new cleaning service. calendar may be nil
// when calendar sync is not configured.
func NewCleaningService(scheduleRepo facility.CleaningScheduleRepository, calendar CalendarService, logger *zap.Logger) *CleaningService {
	return &CleaningService{
		scheduleRepo: scheduleRepo,
		calendar:     calendar,
		logger:       logger,
	}
}

// CreateCleaningInput contains the input for creating a cleaning slot
type CreateCleaningInput struct {
	Area          string
	AssignedTo    string
	ScheduledDate time.Time
	Notes         string
}

// UpdateCleaningInput contains the input for updating a cleaning slot.
// Nil pointers leave the corresponding field untouched.
type UpdateCleaningInput struct {
	ScheduleID    uuid.UUID
	Area          *string
	AssignedTo    *string
	ScheduledDate *time.Time
	Status        *facility.ScheduleStatus
	Notes         *string
}

// CleaningResult is a cleaning schedule response
type CleaningResult struct {
	ID              uuid.UUID
	Area            string
	AssignedTo      string
	ScheduledDate   time.Time
	Status          facility.ScheduleStatus
	Notes           string
	CalendarEventID string
}

// Create creates a cleaning slot and mirrors it to the external calendar
func (s *CleaningService) Create(ctx context.Context, input CreateCleaningInput) (*CleaningResult, error) {
	schedule, err := facility.NewCleaningSchedule(input.Area, input.AssignedTo, input.ScheduledDate)
	if err != nil {
		return nil, err
	}
	if input.Notes != "" {
		schedule.SetNotes(input.Notes)
	}

	s.syncCreate(ctx, schedule)

	if err := s.scheduleRepo.Create(ctx, schedule); err != nil {
		return nil, err
	}

	s.logger.Info("Cleaning schedule created",
		zap.String("schedule_id", schedule.ID.String()),
		zap.String("area", schedule.Area),
		zap.Time("scheduled_date", schedule.ScheduledDate))

	result := toCleaningResult(schedule)
	return &result, nil
}

// Update applies changes to a slot and pushes them to the linked
// calendar event
func (s *CleaningService) Update(ctx context.Context, input UpdateCleaningInput) (*CleaningResult, error) {
	schedule, err := s.scheduleRepo.FindByID(ctx, input.ScheduleID)
	if err != nil {
		return nil, err
	}

	if input.Area != nil {
		if err := schedule.SetArea(*input.Area); err != nil {
			return nil, err
		}
	}
	if input.AssignedTo != nil {
		if err := schedule.SetAssignedTo(*input.AssignedTo); err != nil {
			return nil, err
		}
	}
	if input.ScheduledDate != nil {
		if err := schedule.SetScheduledDate(*input.ScheduledDate); err != nil {
			return nil, err
		}
	}
	if input.Status != nil {
		if err := schedule.SetStatus(*input.Status); err != nil {
			return nil, err
		}
	}
	if input.Notes != nil {
		schedule.SetNotes(*input.Notes)
	}

	s.syncUpdate(ctx, schedule)

	if err := s.scheduleRepo.Update(ctx, schedule); err != nil {
		return nil, err
	}

	result := toCleaningResult(schedule)
	return &result, nil
}

// Get returns a single slot
func (s *CleaningService) Get(ctx context.Context, scheduleID uuid.UUID) (*CleaningResult, error) {
	schedule, err := s.scheduleRepo.FindByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	result := toCleaningResult(schedule)
	return &result, nil
}

// List returns all slots, soonest first
func (s *CleaningService) List(ctx context.Context) ([]CleaningResult, error) {
	schedules, err := s.scheduleRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]CleaningResult, len(schedules))
	for i, schedule := range schedules {
		results[i] = toCleaningResult(schedule)
	}
	return results, nil
}

// ListByDateRange returns slots scheduled within [from, to]
func (s *CleaningService) ListByDateRange(ctx context.Context, from, to time.Time) ([]CleaningResult, error) {
	schedules, err := s.scheduleRepo.FindByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	results := make([]CleaningResult, len(schedules))
	for i, schedule := range schedules {
		results[i] = toCleaningResult(schedule)
	}
	return results, nil
}

// Delete removes a slot and its calendar event
func (s *CleaningService) Delete(ctx context.Context, scheduleID uuid.UUID) error {
	schedule, err := s.scheduleRepo.FindByID(ctx, scheduleID)
	if err != nil {
		return err
	}

	if err := s.scheduleRepo.Delete(ctx, scheduleID); err != nil {
		return err
	}

	if s.calendar != nil && schedule.CalendarEventID != "" {
		if err := s.calendar.DeleteEvent(ctx, schedule.CalendarEventID); err != nil {
			s.logger.Warn("Calendar event deletion failed",
				zap.String("schedule_id", scheduleID.String()),
				zap.String("calendar_event_id", schedule.CalendarEventID),
				zap.Error(err))
		}
	}

	return nil
}

func (s *CleaningService) syncCreate(ctx context.Context, schedule *facility.CleaningSchedule) {
	if s.calendar == nil {
		return
	}

	eventID, err := s.calendar.CreateEvent(ctx, calendarEventFor(schedule))
	if err != nil {
		s.logger.Warn("Calendar event creation failed",
			zap.String("schedule_id", schedule.ID.String()),
			zap.Error(err))
		return
	}
	schedule.LinkCalendarEvent(eventID)
}

func (s *CleaningService) syncUpdate(ctx context.Context, schedule *facility.CleaningSchedule) {
	if s.calendar == nil {
		return
	}

	// a slot created while the calendar was down has no event yet
	if schedule.CalendarEventID == "" {
		s.syncCreate(ctx, schedule)
		return
	}

	if err := s.calendar.UpdateEvent(ctx, schedule.CalendarEventID, calendarEventFor(schedule)); err != nil {
		s.logger.Warn("Calendar event update failed",
			zap.String("schedule_id", schedule.ID.String()),
			zap.String("calendar_event_id", schedule.CalendarEventID),
			zap.Error(err))
	}
}

func calendarEventFor(schedule *facility.CleaningSchedule) CalendarEvent {
	return CalendarEvent{
		Title: "Cleaning: " + schedule.Area + " (" + schedule.AssignedTo + ")",
		Date:  schedule.ScheduledDate,
		Notes: schedule.Notes,
	}
}

func toCleaningResult(schedule *facility.CleaningSchedule) CleaningResult {
	return CleaningResult{
		ID:              schedule.ID,
		Area:            schedule.Area,
		AssignedTo:      schedule.AssignedTo,
		ScheduledDate:   schedule.ScheduledDate,
		Status:          schedule.Status,
		Notes:           schedule.Notes,
		CalendarEventID: schedule.CalendarEventID,
	}
}
