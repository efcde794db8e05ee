package notification

import (
	"context"
	"fmt"

	"github.com/dormsync/backend/internal/domain/billing"
	"github.com/dormsync/backend/internal/domain/identity"
	"github.com/dormsync/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// PaymentVerifiedHandler tells a student their payment was verified.
// The event fires once per verification, so the student is notified once.
type PaymentVerifiedHandler struct {
	userRepo identity.UserRepository
	pusher   Pusher
	logger   *zap.Logger
}

// NewPaymentVerifiedHandler creates a new payment verified handler
func NewPaymentVerifiedHandler(userRepo identity.UserRepository, pusher Pusher, logger *zap.Logger) *PaymentVerifiedHandler {
	return &PaymentVerifiedHandler{
		userRepo: userRepo,
		pusher:   pusher,
		logger:   logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *PaymentVerifiedHandler) EventTypes() []string {
	return []string{billing.EventTypePaymentVerified}
}

// Handle notifies the paying student
func (h *PaymentVerifiedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	verified, ok := event.(*billing.PaymentVerifiedEvent)
	if !ok {
		return nil
	}

	user, err := h.userRepo.FindByID(ctx, verified.StudentID)
	if err != nil {
		h.logger.Error("Student lookup for payment notification failed",
			zap.String("payment_id", verified.AggregateID().String()),
			zap.String("student_id", verified.StudentID.String()),
			zap.Error(err))
		return err
	}

	if !user.HasPushTarget() {
		return nil
	}

	body := fmt.Sprintf("Your %s payment of %s has been verified.", verified.Type, verified.Amount.StringFixed(2))
	if err := h.pusher.Push(ctx, user.PushToken, "Payment verified", body); err != nil {
		h.logger.Warn("Push delivery failed",
			zap.String("user_id", user.ID.String()),
			zap.Error(err))
		return err
	}

	return nil
}
