package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/dormsync/backend/internal/domain/attendance"
	"github.com/dormsync/backend/internal/domain/identity"
	"github.com/dormsync/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AttendanceService drives the daily attendance state machine
type AttendanceService struct {
	logRepo  attendance.LogRepository
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(logRepo attendance.LogRepository, userRepo identity.UserRepository, logger *zap.Logger) *AttendanceService {
	return &AttendanceService{
		logRepo:  logRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

// RecordEventInput contains the input for an attendance scan event.
// Identifier may be a student identifier, user ID, or email. A zero
// Timestamp means "now".
type RecordEventInput struct {
	Identifier string
	Timestamp  time.Time
}

// EventResult reports which transition the event caused
type EventResult struct {
	Action attendance.Action
	Log    LogResult
}

// LogResult is an attendance log response
type LogResult struct {
	ID        uuid.UUID
	StudentID uuid.UUID
	Date      time.Time
	CheckIn   *time.Time
	CheckOut  *time.Time
	Status    attendance.Status
}

// OverrideInput contains the admin correction input. Nil fields are
// left untouched; the Clear flags reset a check time back to null.
type OverrideInput struct {
	LogID         uuid.UUID
	Status        *attendance.Status
	CheckIn       *time.Time
	CheckOut      *time.Time
	ClearCheckIn  bool
	ClearCheckOut bool
}

// RecordEvent applies one scan event. The first event of a student's day
// checks them in, the second checks them out, and any further event is a
// no-op reported as completed. A concurrent first event loses the unique
// (student, date) race and is replayed against the winner's row.
func (s *AttendanceService) RecordEvent(ctx context.Context, input RecordEventInput) (*EventResult, error) {
	user, err := s.userRepo.FindByIdentifier(ctx, input.Identifier)
	if err != nil {
		return nil, err
	}
	if !user.IsStudent() {
		return nil, shared.ErrNotFound
	}

	eventTime := input.Timestamp
	if eventTime.IsZero() {
		eventTime = time.Now()
	}
	date := attendance.DateOf(eventTime)

	log, err := s.logRepo.FindByStudentAndDate(ctx, user.ID, date)
	switch {
	case err == nil:
		action := log.Apply(eventTime)
		if action != attendance.ActionCompleted {
			if err := s.logRepo.Update(ctx, log); err != nil {
				return nil, err
			}
		}
		s.logger.Info("Attendance event",
			zap.String("student_id", user.ID.String()),
			zap.String("action", string(action)))
		return &EventResult{Action: action, Log: toLogResult(log)}, nil

	case isNotFound(err):
		log = attendance.NewLog(user.ID, eventTime)
		if createErr := s.logRepo.Create(ctx, log); createErr != nil {
			if isAlreadyExists(createErr) {
				// lost the same-day creation race; replay on the winner's row
				return s.replayOnExisting(ctx, user.ID, date, eventTime)
			}
			return nil, createErr
		}
		s.logger.Info("Attendance event",
			zap.String("student_id", user.ID.String()),
			zap.String("action", string(attendance.ActionCheckIn)))
		return &EventResult{Action: attendance.ActionCheckIn, Log: toLogResult(log)}, nil

	default:
		return nil, err
	}
}

func (s *AttendanceService) replayOnExisting(ctx context.Context, studentID uuid.UUID, date, eventTime time.Time) (*EventResult, error) {
	log, err := s.logRepo.FindByStudentAndDate(ctx, studentID, date)
	if err != nil {
		return nil, err
	}

	action := log.Apply(eventTime)
	if action != attendance.ActionCompleted {
		if err := s.logRepo.Update(ctx, log); err != nil {
			return nil, err
		}
	}
	return &EventResult{Action: action, Log: toLogResult(log)}, nil
}

// Override applies an admin correction, bypassing the state machine
func (s *AttendanceService) Override(ctx context.Context, input OverrideInput) (*LogResult, error) {
	log, err := s.logRepo.FindByID(ctx, input.LogID)
	if err != nil {
		return nil, err
	}

	patch := attendance.OverridePatch{
		Status:        input.Status,
		CheckIn:       input.CheckIn,
		CheckOut:      input.CheckOut,
		ClearCheckIn:  input.ClearCheckIn,
		ClearCheckOut: input.ClearCheckOut,
	}
	if err := log.Override(patch); err != nil {
		return nil, err
	}

	if err := s.logRepo.Update(ctx, log); err != nil {
		return nil, err
	}

	s.logger.Info("Attendance log overridden", zap.String("log_id", log.ID.String()))

	result := toLogResult(log)
	return &result, nil
}

// ListByDate returns all logs for a calendar date
func (s *AttendanceService) ListByDate(ctx context.Context, date time.Time) ([]LogResult, error) {
	logs, err := s.logRepo.FindByDate(ctx, attendance.DateOf(date))
	if err != nil {
		return nil, err
	}
	return toLogResults(logs), nil
}

// ListByStudent returns a student's attendance history, newest first
func (s *AttendanceService) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]LogResult, error) {
	logs, err := s.logRepo.FindByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return toLogResults(logs), nil
}

func toLogResult(log *attendance.Log) LogResult {
	return LogResult{
		ID:        log.ID,
		StudentID: log.StudentID,
		Date:      log.Date,
		CheckIn:   log.CheckIn,
		CheckOut:  log.CheckOut,
		Status:    log.Status,
	}
}

func toLogResults(logs []*attendance.Log) []LogResult {
	results := make([]LogResult, len(logs))
	for i, l := range logs {
		results[i] = toLogResult(l)
	}
	return results
}

func isNotFound(err error) bool {
	var domainErr *shared.DomainError
	return errors.As(err, &domainErr) && domainErr.Code == shared.ErrNotFound.Code
}

func isAlreadyExists(err error) bool {
	var domainErr *shared.DomainError
	return errors.As(err, &domainErr) && domainErr.Code == shared.ErrAlreadyExists.Code
}
