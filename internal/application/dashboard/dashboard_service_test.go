package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/dormsync/backend/internal/domain/billing"
	"github.com/dormsync/backend/internal/domain/facility"
	"github.com/dormsync/backend/internal/domain/identity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type userCountStub struct {
	identity.UserRepository
	students int64
}

func (r *userCountStub) CountStudents(ctx context.Context) (int64, error) {
	return r.students, nil
}

type maintenanceStub struct {
	facility.MaintenanceRequestRepository
	byStatus map[facility.RequestStatus]int64
	urgent   []*facility.MaintenanceRequest
}

func (r *maintenanceStub) CountByStatus(ctx context.Context, status facility.RequestStatus) (int64, error) {
	return r.byStatus[status], nil
}

func (r *maintenanceStub) FindUrgentUnresolved(ctx context.Context, limit int) ([]*facility.MaintenanceRequest, error) {
	if len(r.urgent) > limit {
		return r.urgent[:limit], nil
	}
	return r.urgent, nil
}

type cleaningStub struct {
	facility.CleaningScheduleRepository
	pending int64
}

func (r *cleaningStub) CountByStatus(ctx context.Context, status facility.ScheduleStatus) (int64, error) {
	return r.pending, nil
}

type announcementStub struct {
	facility.AnnouncementRepository
	recent []*facility.Announcement
}

func (r *announcementStub) FindRecent(ctx context.Context, limit int) ([]*facility.Announcement, error) {
	if len(r.recent) > limit {
		return r.recent[:limit], nil
	}
	return r.recent, nil
}

type paymentStub struct {
	billing.PaymentRepository
	overdue int64
}

func (r *paymentStub) CountByStatus(ctx context.Context, status billing.PaymentStatus) (int64, error) {
	return r.overdue, nil
}

func TestDashboardService_GetStats(t *testing.T) {
	urgentReq, err := facility.NewMaintenanceRequest(uuid.New(), "No hot water", "Second floor showers run cold.", facility.UrgencyHigh, "204-B")
	require.NoError(t, err)

	announcements := make([]*facility.Announcement, 0, 6)
	for i := 0; i < 6; i++ {
		a, err := facility.NewAnnouncement("Weekly update", "Nothing unusual this week.", facility.PriorityNormal, uuid.New())
		require.NoError(t, err)
		announcements = append(announcements, a)
	}

	service := NewDashboardService(
		&userCountStub{students: 42},
		&maintenanceStub{
			byStatus: map[facility.RequestStatus]int64{
				facility.RequestStatusPending:    3,
				facility.RequestStatusInProgress: 2,
			},
			urgent: []*facility.MaintenanceRequest{urgentReq},
		},
		&cleaningStub{pending: 4},
		&announcementStub{recent: announcements},
		&paymentStub{overdue: 7},
		zap.NewNop(),
	)

	stats, err := service.GetStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(42), stats.TotalStudents)
	assert.Equal(t, int64(5), stats.UnresolvedMaintenance)
	assert.Equal(t, int64(4), stats.PendingCleaning)
	assert.Equal(t, int64(7), stats.OverduePayments)
	require.Len(t, stats.UrgentRequests, 1)
	assert.Equal(t, "No hot water", stats.UrgentRequests[0].Title)
	assert.Len(t, stats.RecentAnnouncements, 5)
	assert.WithinDuration(t, time.Now(), stats.RecentAnnouncements[0].CreatedAt, time.Minute)
}
