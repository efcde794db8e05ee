package handler

import (
	"time"

	dashboardapp "github.com/dormsync/backend/internal/application/dashboard"
	"github.com/gin-gonic/gin"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	BaseHandler
	dashboardService *dashboardapp.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *dashboardapp.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// UrgentRequestSummaryResponse is one high-urgency unresolved request
type UrgentRequestSummaryResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	RoomNumber string    `json:"room_number"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// AnnouncementSummaryResponse is one recent announcement
type AnnouncementSummaryResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Priority  string    `json:"priority"`
	CreatedAt time.Time `json:"created_at"`
}

// DashboardStatsResponse is the aggregate dashboard payload
type DashboardStatsResponse struct {
	TotalStudents         int64                          `json:"total_students"`
	UnresolvedMaintenance int64                          `json:"unresolved_maintenance"`
	PendingCleaning       int64                          `json:"pending_cleaning"`
	OverduePayments       int64                          `json:"overdue_payments"`
	UrgentRequests        []UrgentRequestSummaryResponse `json:"urgent_requests"`
	RecentAnnouncements   []AnnouncementSummaryResponse  `json:"recent_announcements"`
}

// GetStats godoc
// @Summary      Get dashboard stats
// @Description  Aggregate counters and highlight lists for the back-office landing page
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} dto.Response{data=DashboardStatsResponse}
// @Security     BearerAuth
// @Router       /dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *gin.Context) {
	result, err := h.dashboardService.GetStats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	urgent := make([]UrgentRequestSummaryResponse, len(result.UrgentRequests))
	for i, r := range result.UrgentRequests {
		urgent[i] = UrgentRequestSummaryResponse{
			ID:         r.ID.String(),
			Title:      r.Title,
			RoomNumber: r.RoomNumber,
			Status:     string(r.Status),
			CreatedAt:  r.CreatedAt,
		}
	}

	recent := make([]AnnouncementSummaryResponse, len(result.RecentAnnouncements))
	for i, a := range result.RecentAnnouncements {
		recent[i] = AnnouncementSummaryResponse{
			ID:        a.ID.String(),
			Title:     a.Title,
			Priority:  string(a.Priority),
			CreatedAt: a.CreatedAt,
		}
	}

	h.Success(c, DashboardStatsResponse{
		TotalStudents:         result.TotalStudents,
		UnresolvedMaintenance: result.UnresolvedMaintenance,
		PendingCleaning:       result.PendingCleaning,
		OverduePayments:       result.OverduePayments,
		UrgentRequests:        urgent,
		RecentAnnouncements:   recent,
	})
}
