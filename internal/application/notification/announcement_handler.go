package notification

import (
	"context"

	"github.com/dormsync/backend/internal/domain/facility"
	"github.com/dormsync/backend/internal/domain/identity"
	"github.com/dormsync/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// UrgentAnnouncementHandler fans an urgent announcement out to every
// user with a registered push target. One failed delivery never blocks
// the rest.
type UrgentAnnouncementHandler struct {
	userRepo identity.UserRepository
	pusher   Pusher
	logger   *zap.Logger
}

// NewUrgentAnnouncementHandler creates a new urgent announcement handler
func NewUrgentAnnouncementHandler(userRepo identity.UserRepository, pusher Pusher, logger *zap.Logger) *UrgentAnnouncementHandler {
	return &UrgentAnnouncementHandler{
		userRepo: userRepo,
		pusher:   pusher,
		logger:   logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *UrgentAnnouncementHandler) EventTypes() []string {
	return []string{facility.EventTypeUrgentAnnouncementPosted}
}

// Handle delivers the announcement to all push targets
func (h *UrgentAnnouncementHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	posted, ok := event.(*facility.UrgentAnnouncementPostedEvent)
	if !ok {
		return nil
	}

	users, err := h.userRepo.FindWithPushTarget(ctx)
	if err != nil {
		h.logger.Error("Push target lookup failed",
			zap.String("announcement_id", posted.AggregateID().String()),
			zap.Error(err))
		return err
	}

	delivered := 0
	for _, user := range users {
		if err := h.pusher.Push(ctx, user.PushToken, posted.Title, posted.Content); err != nil {
			h.logger.Warn("Push delivery failed",
				zap.String("user_id", user.ID.String()),
				zap.Error(err))
			continue
		}
		delivered++
	}

	h.logger.Info("Urgent announcement fan-out finished",
		zap.String("announcement_id", posted.AggregateID().String()),
		zap.Int("targets", len(users)),
		zap.Int("delivered", delivered))

	return nil
}
