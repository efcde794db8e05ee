package facility

import (
	"context"
	"io"
	"time"

	"github.com/dormsync/backend/internal/domain/facility"
	"github.com/dormsync/backend/internal/domain/identity"
	"github.com/dormsync/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockMaintenanceRepository is a mock implementation of facility.MaintenanceRequestRepository
type MockMaintenanceRepository struct {
	mock.Mock
}

func (m *MockMaintenanceRepository) Create(ctx context.Context, req *facility.MaintenanceRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockMaintenanceRepository) Update(ctx context.Context, req *facility.MaintenanceRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockMaintenanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMaintenanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*facility.MaintenanceRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*facility.MaintenanceRequest), args.Error(1)
}

func (m *MockMaintenanceRepository) FindAll(ctx context.Context, filter facility.MaintenanceRequestFilter) ([]*facility.MaintenanceRequest, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*facility.MaintenanceRequest), args.Error(1)
}

func (m *MockMaintenanceRepository) CountByStatus(ctx context.Context, status facility.RequestStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMaintenanceRepository) FindUrgentUnresolved(ctx context.Context, limit int) ([]*facility.MaintenanceRequest, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*facility.MaintenanceRequest), args.Error(1)
}

// MockCleaningRepository is a mock implementation of facility.CleaningScheduleRepository
type MockCleaningRepository struct {
	mock.Mock
}

func (m *MockCleaningRepository) Create(ctx context.Context, schedule *facility.CleaningSchedule) error {
	args := m.Called(ctx, schedule)
	return args.Error(0)
}

func (m *MockCleaningRepository) Update(ctx context.Context, schedule *facility.CleaningSchedule) error {
	args := m.Called(ctx, schedule)
	return args.Error(0)
}

func (m *MockCleaningRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCleaningRepository) FindByID(ctx context.Context, id uuid.UUID) (*facility.CleaningSchedule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*facility.CleaningSchedule), args.Error(1)
}

func (m *MockCleaningRepository) FindAll(ctx context.Context) ([]*facility.CleaningSchedule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*facility.CleaningSchedule), args.Error(1)
}

func (m *MockCleaningRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]*facility.CleaningSchedule, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*facility.CleaningSchedule), args.Error(1)
}

func (m *MockCleaningRepository) CountByStatus(ctx context.Context, status facility.ScheduleStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockAnnouncementRepository is a mock implementation of facility.AnnouncementRepository
type MockAnnouncementRepository struct {
	mock.Mock
}

func (m *MockAnnouncementRepository) Create(ctx context.Context, announcement *facility.Announcement) error {
	args := m.Called(ctx, announcement)
	return args.Error(0)
}

func (m *MockAnnouncementRepository) Update(ctx context.Context, announcement *facility.Announcement) error {
	args := m.Called(ctx, announcement)
	return args.Error(0)
}

func (m *MockAnnouncementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAnnouncementRepository) FindByID(ctx context.Context, id uuid.UUID) (*facility.Announcement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*facility.Announcement), args.Error(1)
}

func (m *MockAnnouncementRepository) FindAll(ctx context.Context) ([]*facility.Announcement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*facility.Announcement), args.Error(1)
}

func (m *MockAnnouncementRepository) FindRecent(ctx context.Context, limit int) ([]*facility.Announcement, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*facility.Announcement), args.Error(1)
}

// MockObjectStorage is a mock implementation of ObjectStorage
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Upload(ctx context.Context, content io.Reader, filename, contentType, category string) (string, string, error) {
	args := m.Called(ctx, content, filename, contentType, category)
	return args.String(0), args.String(1), args.Error(2)
}

// MockCalendarService is a mock implementation of CalendarService
type MockCalendarService struct {
	mock.Mock
}

func (m *MockCalendarService) CreateEvent(ctx context.Context, event CalendarEvent) (string, error) {
	args := m.Called(ctx, event)
	return args.String(0), args.Error(1)
}

func (m *MockCalendarService) UpdateEvent(ctx context.Context, eventID string, event CalendarEvent) error {
	args := m.Called(ctx, eventID, event)
	return args.Error(0)
}

func (m *MockCalendarService) DeleteEvent(ctx context.Context, eventID string) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// identityStub covers the user and profile lookups the maintenance
// service makes without mocking the full repository interfaces
type identityStub struct {
	identity.UserRepository
	users map[uuid.UUID]*identity.User
}

func (r *identityStub) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return user, nil
}

type profileStub struct {
	identity.StudentProfileRepository
	profiles map[uuid.UUID]*identity.StudentProfile
}

func (r *profileStub) FindByUserID(ctx context.Context, userID uuid.UUID) (*identity.StudentProfile, error) {
	profile, ok := r.profiles[userID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return profile, nil
}
