package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/dormsync/backend/internal/domain/attendance"
	"github.com/dormsync/backend/internal/domain/identity"
	"github.com/dormsync/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockLogRepository is a mock implementation of attendance.LogRepository
type MockLogRepository struct {
	mock.Mock
}

func (m *MockLogRepository) Create(ctx context.Context, log *attendance.Log) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockLogRepository) Update(ctx context.Context, log *attendance.Log) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*attendance.Log, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*attendance.Log), args.Error(1)
}

func (m *MockLogRepository) FindByStudentAndDate(ctx context.Context, studentID uuid.UUID, date time.Time) (*attendance.Log, error) {
	args := m.Called(ctx, studentID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*attendance.Log), args.Error(1)
}

func (m *MockLogRepository) FindByDate(ctx context.Context, date time.Time) ([]*attendance.Log, error) {
	args := m.Called(ctx, date)
	return args.Get(0).([]*attendance.Log), args.Error(1)
}

func (m *MockLogRepository) FindByStudent(ctx context.Context, studentID uuid.UUID) ([]*attendance.Log, error) {
	args := m.Called(ctx, studentID)
	return args.Get(0).([]*attendance.Log), args.Error(1)
}

// minimalUserRepo satisfies identity.UserRepository for the lookups this
// service performs
type minimalUserRepo struct {
	identity.UserRepository
	user *identity.User
	err  error
}

func (r *minimalUserRepo) FindByIdentifier(_ context.Context, _ string) (*identity.User, error) {
	return r.user, r.err
}

func newTestStudent(t *testing.T) *identity.User {
	t.Helper()
	user, err := identity.NewStudent("Maria", "Santos", "", "maria@example.com", "password123")
	require.NoError(t, err)
	require.NoError(t, user.AssignStudentID("2025-001"))
	return user
}

func TestAttendanceService_RecordEvent_FirstScanChecksIn(t *testing.T) {
	logRepo := new(MockLogRepository)
	user := newTestStudent(t)
	svc := NewAttendanceService(logRepo, &minimalUserRepo{user: user}, zap.NewNop())

	eventTime := time.Date(2025, 6, 14, 7, 30, 0, 0, time.UTC)
	date := attendance.DateOf(eventTime)

	logRepo.On("FindByStudentAndDate", mock.Anything, user.ID, date).Return(nil, shared.ErrNotFound)
	logRepo.On("Create", mock.Anything, mock.AnythingOfType("*attendance.Log")).Return(nil)

	result, err := svc.RecordEvent(context.Background(), RecordEventInput{Identifier: "2025-001", Timestamp: eventTime})
	require.NoError(t, err)

	assert.Equal(t, attendance.ActionCheckIn, result.Action)
	require.NotNil(t, result.Log.CheckIn)
	assert.Equal(t, eventTime, *result.Log.CheckIn)
	assert.Nil(t, result.Log.CheckOut)
	assert.Equal(t, attendance.StatusPresent, result.Log.Status)
}

func TestAttendanceService_RecordEvent_SecondScanChecksOut(t *testing.T) {
	logRepo := new(MockLogRepository)
	user := newTestStudent(t)
	svc := NewAttendanceService(logRepo, &minimalUserRepo{user: user}, zap.NewNop())

	morning := time.Date(2025, 6, 14, 7, 30, 0, 0, time.UTC)
	evening := time.Date(2025, 6, 14, 18, 45, 0, 0, time.UTC)
	log := attendance.NewLog(user.ID, morning)

	logRepo.On("FindByStudentAndDate", mock.Anything, user.ID, log.Date).Return(log, nil)
	logRepo.On("Update", mock.Anything, log).Return(nil)

	result, err := svc.RecordEvent(context.Background(), RecordEventInput{Identifier: "2025-001", Timestamp: evening})
	require.NoError(t, err)

	assert.Equal(t, attendance.ActionCheckOut, result.Action)
	require.NotNil(t, result.Log.CheckOut)
	assert.Equal(t, evening, *result.Log.CheckOut)
}

func TestAttendanceService_RecordEvent_ThirdScanIsNoOp(t *testing.T) {
	logRepo := new(MockLogRepository)
	user := newTestStudent(t)
	svc := NewAttendanceService(logRepo, &minimalUserRepo{user: user}, zap.NewNop())

	morning := time.Date(2025, 6, 14, 7, 30, 0, 0, time.UTC)
	log := attendance.NewLog(user.ID, morning)
	log.Apply(morning.Add(10 * time.Hour))
	require.True(t, log.IsTerminal())

	logRepo.On("FindByStudentAndDate", mock.Anything, user.ID, log.Date).Return(log, nil)

	before := *log.CheckOut
	result, err := svc.RecordEvent(context.Background(), RecordEventInput{Identifier: "2025-001", Timestamp: morning.Add(12 * time.Hour)})
	require.NoError(t, err)

	assert.Equal(t, attendance.ActionCompleted, result.Action)
	assert.Equal(t, before, *result.Log.CheckOut)
	// a completed day is never written back
	logRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAttendanceService_RecordEvent_LosesCreationRace(t *testing.T) {
	logRepo := new(MockLogRepository)
	user := newTestStudent(t)
	svc := NewAttendanceService(logRepo, &minimalUserRepo{user: user}, zap.NewNop())

	eventTime := time.Date(2025, 6, 14, 7, 30, 0, 0, time.UTC)
	date := attendance.DateOf(eventTime)
	winner := attendance.NewLog(user.ID, eventTime.Add(-time.Second))

	logRepo.On("FindByStudentAndDate", mock.Anything, user.ID, date).Return(nil, shared.ErrNotFound).Once()
	logRepo.On("Create", mock.Anything, mock.AnythingOfType("*attendance.Log")).Return(shared.ErrAlreadyExists)
	logRepo.On("FindByStudentAndDate", mock.Anything, user.ID, date).Return(winner, nil).Once()
	logRepo.On("Update", mock.Anything, winner).Return(nil)

	result, err := svc.RecordEvent(context.Background(), RecordEventInput{Identifier: "2025-001", Timestamp: eventTime})
	require.NoError(t, err)

	// the losing scan becomes the winner's check-out
	assert.Equal(t, attendance.ActionCheckOut, result.Action)
	logRepo.AssertExpectations(t)
}

func TestAttendanceService_RecordEvent_UnknownStudent(t *testing.T) {
	logRepo := new(MockLogRepository)
	svc := NewAttendanceService(logRepo, &minimalUserRepo{err: shared.ErrNotFound}, zap.NewNop())

	_, err := svc.RecordEvent(context.Background(), RecordEventInput{Identifier: "ghost"})
	require.Error(t, err)
}

func TestAttendanceService_Override(t *testing.T) {
	logRepo := new(MockLogRepository)
	user := newTestStudent(t)
	svc := NewAttendanceService(logRepo, &minimalUserRepo{user: user}, zap.NewNop())

	log := attendance.NewLog(user.ID, time.Date(2025, 6, 14, 7, 30, 0, 0, time.UTC))

	logRepo.On("FindByID", mock.Anything, log.ID).Return(log, nil)
	logRepo.On("Update", mock.Anything, log).Return(nil)

	late := attendance.StatusLate
	result, err := svc.Override(context.Background(), OverrideInput{LogID: log.ID, Status: &late})
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusLate, result.Status)
}

func TestAttendanceService_Override_ClearsCheckIn(t *testing.T) {
	logRepo := new(MockLogRepository)
	user := newTestStudent(t)
	svc := NewAttendanceService(logRepo, &minimalUserRepo{user: user}, zap.NewNop())

	log := attendance.NewLog(user.ID, time.Date(2025, 6, 14, 7, 30, 0, 0, time.UTC))
	require.NotNil(t, log.CheckIn)

	logRepo.On("FindByID", mock.Anything, log.ID).Return(log, nil)
	logRepo.On("Update", mock.Anything, log).Return(nil)

	result, err := svc.Override(context.Background(), OverrideInput{LogID: log.ID, ClearCheckIn: true})
	require.NoError(t, err)

	assert.Nil(t, result.CheckIn)
}

func TestAttendanceService_ListByDate_TruncatesToCalendarDate(t *testing.T) {
	logRepo := new(MockLogRepository)
	user := newTestStudent(t)
	svc := NewAttendanceService(logRepo, &minimalUserRepo{user: user}, zap.NewNop())

	at := time.Date(2025, 6, 14, 23, 59, 0, 0, time.UTC)
	date := attendance.DateOf(at)
	log := attendance.NewLog(user.ID, at)

	logRepo.On("FindByDate", mock.Anything, date).Return([]*attendance.Log{log}, nil)

	results, err := svc.ListByDate(context.Background(), at)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, user.ID, results[0].StudentID)
}
