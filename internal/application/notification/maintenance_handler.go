package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/dormsync/backend/internal/domain/facility"
	"github.com/dormsync/backend/internal/domain/identity"
	"github.com/dormsync/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// mailTimeout bounds one SMTP delivery so a hung relay cannot pin the
// dispatch goroutine.
const mailTimeout = 15 * time.Second

// MaintenanceCreatedHandler mails every admin when a student files a
// maintenance request. It runs off the event bus, so a slow relay never
// delays the student's request.
type MaintenanceCreatedHandler struct {
	userRepo identity.UserRepository
	mailer   Mailer
	logger   *zap.Logger
}

// NewMaintenanceCreatedHandler creates a new maintenance created handler
func NewMaintenanceCreatedHandler(userRepo identity.UserRepository, mailer Mailer, logger *zap.Logger) *MaintenanceCreatedHandler {
	return &MaintenanceCreatedHandler{
		userRepo: userRepo,
		mailer:   mailer,
		logger:   logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *MaintenanceCreatedHandler) EventTypes() []string {
	return []string{facility.EventTypeMaintenanceRequestCreated}
}

// Handle mails the admins about the new request
func (h *MaintenanceCreatedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	created, ok := event.(*facility.MaintenanceRequestCreatedEvent)
	if !ok {
		return nil
	}

	student, err := h.userRepo.FindByID(ctx, created.StudentID)
	if err != nil {
		h.logger.Error("Student lookup for maintenance mail failed",
			zap.String("request_id", created.AggregateID().String()),
			zap.String("student_id", created.StudentID.String()),
			zap.Error(err))
		return err
	}

	admins, err := h.userRepo.FindAdmins(ctx)
	if err != nil {
		h.logger.Error("Admin lookup for maintenance mail failed",
			zap.String("request_id", created.AggregateID().String()),
			zap.Error(err))
		return err
	}
	if len(admins) == 0 {
		return nil
	}

	to := make([]string, len(admins))
	for i, admin := range admins {
		to[i] = admin.Email
	}

	subject := fmt.Sprintf("New maintenance request: %s", created.Title)
	body := fmt.Sprintf("Student %s filed a %s-urgency maintenance request for room %s.\n\n%s",
		student.FullName, created.Urgency, created.RoomNumber, created.Description)

	sendCtx, cancel := context.WithTimeout(ctx, mailTimeout)
	defer cancel()

	if err := h.mailer.Send(sendCtx, to, subject, body); err != nil {
		h.logger.Warn("Maintenance mail failed",
			zap.String("request_id", created.AggregateID().String()),
			zap.Error(err))
		return err
	}

	return nil
}
