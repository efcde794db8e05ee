package facility

import (
	"context"
	"time"

	"github.com/dormsync/backend/internal/domain/facility"
	"github.com/dormsync/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AnnouncementService handles announcement operations
type AnnouncementService struct {
	announcementRepo facility.AnnouncementRepository
	eventPublisher   shared.EventPublisher
	logger           *zap.Logger
}

// NewAnnouncementService creates a new announcement service
func NewAnnouncementService(announcementRepo facility.AnnouncementRepository, logger *zap.Logger) *AnnouncementService {
	return &AnnouncementService{
		announcementRepo: announcementRepo,
		logger:           logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *AnnouncementService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateAnnouncementInput contains the input for posting an announcement.
// CreatedBy is the authenticated actor; callers without one must pass an
// explicit system actor id.
type CreateAnnouncementInput struct {
	Title     string
	Content   string
	Priority  facility.Priority
	CreatedBy uuid.UUID
}

// UpdateAnnouncementInput contains the input for editing an announcement.
// Nil pointers leave the corresponding field untouched.
type UpdateAnnouncementInput struct {
	AnnouncementID uuid.UUID
	Title          *string
	Content        *string
	Priority       *facility.Priority
}

// AnnouncementResult is an announcement response
type AnnouncementResult struct {
	ID        uuid.UUID
	Title     string
	Content   string
	Priority  facility.Priority
	CreatedBy uuid.UUID
	CreatedAt time.Time
}

// Create posts an announcement. An urgent one raises the push fan-out
// event; the fan-out itself runs on the event bus, off this call path.
func (s *AnnouncementService) Create(ctx context.Context, input CreateAnnouncementInput) (*AnnouncementResult, error) {
	announcement, err := facility.NewAnnouncement(input.Title, input.Content, input.Priority, input.CreatedBy)
	if err != nil {
		return nil, err
	}

	if err := s.announcementRepo.Create(ctx, announcement); err != nil {
		return nil, err
	}

	events := announcement.GetDomainEvents()
	announcement.ClearDomainEvents()
	if s.eventPublisher != nil && len(events) > 0 {
		// Errors are logged by the event bus, not propagated
		_ = s.eventPublisher.Publish(ctx, events...)
	}

	s.logger.Info("Announcement posted",
		zap.String("announcement_id", announcement.ID.String()),
		zap.String("priority", string(announcement.Priority)))

	result := toAnnouncementResult(announcement)
	return &result, nil
}

// Update edits an announcement. Raising priority to urgent here does not
// re-notify.
func (s *AnnouncementService) Update(ctx context.Context, input UpdateAnnouncementInput) (*AnnouncementResult, error) {
	announcement, err := s.announcementRepo.FindByID(ctx, input.AnnouncementID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if err := announcement.SetTitle(*input.Title); err != nil {
			return nil, err
		}
	}
	if input.Content != nil {
		if err := announcement.SetContent(*input.Content); err != nil {
			return nil, err
		}
	}
	if input.Priority != nil {
		if err := announcement.SetPriority(*input.Priority); err != nil {
			return nil, err
		}
	}

	if err := s.announcementRepo.Update(ctx, announcement); err != nil {
		return nil, err
	}

	result := toAnnouncementResult(announcement)
	return &result, nil
}

// Get returns a single announcement
func (s *AnnouncementService) Get(ctx context.Context, announcementID uuid.UUID) (*AnnouncementResult, error) {
	announcement, err := s.announcementRepo.FindByID(ctx, announcementID)
	if err != nil {
		return nil, err
	}
	result := toAnnouncementResult(announcement)
	return &result, nil
}

// List returns all announcements, newest first
func (s *AnnouncementService) List(ctx context.Context) ([]AnnouncementResult, error) {
	announcements, err := s.announcementRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]AnnouncementResult, len(announcements))
	for i, a := range announcements {
		results[i] = toAnnouncementResult(a)
	}
	return results, nil
}

// Delete removes an announcement
func (s *AnnouncementService) Delete(ctx context.Context, announcementID uuid.UUID) error {
	if _, err := s.announcementRepo.FindByID(ctx, announcementID); err != nil {
		return err
	}
	return s.announcementRepo.Delete(ctx, announcementID)
}

func toAnnouncementResult(a *facility.Announcement) AnnouncementResult {
	return AnnouncementResult{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		Priority:  a.Priority,
		CreatedBy: a.CreatedBy,
		CreatedAt: a.CreatedAt,
	}
}
