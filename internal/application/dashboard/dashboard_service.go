package dashboard

import (
	"context"
	"time"

	"github.com/dormsync/backend/internal/domain/billing"
	"github.com/dormsync/backend/internal/domain/facility"
	"github.com/dormsync/backend/internal/domain/identity"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	urgentRequestLimit      = 5
	recentAnnouncementLimit = 5
)

// DashboardService aggregates the back-office landing page stats
type DashboardService struct {
	userRepo         identity.UserRepository
	requestRepo      facility.MaintenanceRequestRepository
	scheduleRepo     facility.CleaningScheduleRepository
	announcementRepo facility.AnnouncementRepository
	paymentRepo      billing.PaymentRepository
	logger           *zap.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	userRepo identity.UserRepository,
	requestRepo facility.MaintenanceRequestRepository,
	scheduleRepo facility.CleaningScheduleRepository,
	announcementRepo facility.AnnouncementRepository,
	paymentRepo billing.PaymentRepository,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		userRepo:         userRepo,
		requestRepo:      requestRepo,
		scheduleRepo:     scheduleRepo,
		announcementRepo: announcementRepo,
		paymentRepo:      paymentRepo,
		logger:           logger,
	}
}

// UrgentRequestSummary is one high-urgency unresolved maintenance request
type UrgentRequestSummary struct {
	ID         uuid.UUID
	Title      string
	RoomNumber string
	Status     facility.RequestStatus
	CreatedAt  time.Time
}

// AnnouncementSummary is one recent announcement
type AnnouncementSummary struct {
	ID        uuid.UUID
	Title     string
	Priority  facility.Priority
	CreatedAt time.Time
}

// StatsResult is the aggregate dashboard payload
type StatsResult struct {
	TotalStudents         int64
	UnresolvedMaintenance int64
	PendingCleaning       int64
	OverduePayments       int64
	UrgentRequests        []UrgentRequestSummary
	RecentAnnouncements   []AnnouncementSummary
}

// GetStats gathers the dashboard counters and highlight lists
func (s *DashboardService) GetStats(ctx context.Context) (*StatsResult, error) {
	totalStudents, err := s.userRepo.CountStudents(ctx)
	if err != nil {
		return nil, err
	}

	pendingRequests, err := s.requestRepo.CountByStatus(ctx, facility.RequestStatusPending)
	if err != nil {
		return nil, err
	}
	inProgressRequests, err := s.requestRepo.CountByStatus(ctx, facility.RequestStatusInProgress)
	if err != nil {
		return nil, err
	}

	pendingCleaning, err := s.scheduleRepo.CountByStatus(ctx, facility.ScheduleStatusPending)
	if err != nil {
		return nil, err
	}

	overduePayments, err := s.paymentRepo.CountByStatus(ctx, billing.PaymentStatusOverdue)
	if err != nil {
		return nil, err
	}

	urgentRequests, err := s.requestRepo.FindUrgentUnresolved(ctx, urgentRequestLimit)
	if err != nil {
		return nil, err
	}

	recentAnnouncements, err := s.announcementRepo.FindRecent(ctx, recentAnnouncementLimit)
	if err != nil {
		return nil, err
	}

	result := &StatsResult{
		TotalStudents:         totalStudents,
		UnresolvedMaintenance: pendingRequests + inProgressRequests,
		PendingCleaning:       pendingCleaning,
		OverduePayments:       overduePayments,
		UrgentRequests:        make([]UrgentRequestSummary, len(urgentRequests)),
		RecentAnnouncements:   make([]AnnouncementSummary, len(recentAnnouncements)),
	}

	for i, req := range urgentRequests {
		result.UrgentRequests[i] = UrgentRequestSummary{
			ID:         req.ID,
			Title:      req.Title,
			RoomNumber: req.RoomNumber,
			Status:     req.Status,
			CreatedAt:  req.CreatedAt,
		}
	}
	for i, a := range recentAnnouncements {
		result.RecentAnnouncements[i] = AnnouncementSummary{
			ID:        a.ID,
			Title:     a.Title,
			Priority:  a.Priority,
			CreatedAt: a.CreatedAt,
		}
	}

	return result, nil
}
