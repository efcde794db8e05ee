package facility

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/dormsync/backend/internal/domain/facility"
	"github.com/dormsync/backend/internal/domain/identity"
	"github.com/dormsync/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const attachmentCategory = "maintenance"

// MaintenanceService handles maintenance request operations
type MaintenanceService struct {
	requestRepo    facility.MaintenanceRequestRepository
	userRepo       identity.UserRepository
	profileRepo    identity.StudentProfileRepository
	storage        ObjectStorage
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewMaintenanceService creates a new maintenance service
func NewMaintenanceService(
	requestRepo facility.MaintenanceRequestRepository,
	userRepo identity.UserRepository,
	profileRepo identity.StudentProfileRepository,
	storage ObjectStorage,
	logger *zap.Logger,
) *MaintenanceService {
	return &MaintenanceService{
		requestRepo: requestRepo,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		storage:     storage,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *MaintenanceService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateMaintenanceInput contains the input for filing a request
type CreateMaintenanceInput struct {
	StudentID   uuid.UUID
	Title       string
	Description string
	Urgency     facility.Urgency
}

// UpdateMaintenanceInput contains the input for an admin update.
// Nil pointers leave the corresponding field untouched.
type UpdateMaintenanceInput struct {
	RequestID   uuid.UUID
	Title       *string
	Description *string
	Urgency     *facility.Urgency
	Status      *facility.RequestStatus
	RoomNumber  *string
}

// MaintenanceResult is a maintenance request response
type MaintenanceResult struct {
	ID            uuid.UUID
	StudentID     uuid.UUID
	Title         string
	Description   string
	Urgency       facility.Urgency
	Status        facility.RequestStatus
	RoomNumber    string
	AttachmentURL string
	ResolvedAt    *time.Time
	CreatedAt     time.Time
}

// Create files a maintenance request. The room number is snapshotted
// from the student's profile at this moment and never updated afterwards.
// The admin mail rides on the created event, off the request path.
func (s *MaintenanceService) Create(ctx context.Context, input CreateMaintenanceInput) (*MaintenanceResult, error) {
	user, err := s.userRepo.FindByID(ctx, input.StudentID)
	if err != nil {
		return nil, err
	}
	if !user.IsStudent() {
		return nil, shared.ErrNotFound
	}

	roomNumber := ""
	profile, err := s.profileRepo.FindByUserID(ctx, input.StudentID)
	if err != nil && !isNotFound(err) {
		return nil, err
	}
	if profile != nil {
		roomNumber = profile.RoomNumber
	}

	req, err := facility.NewMaintenanceRequest(input.StudentID, input.Title, input.Description, input.Urgency, roomNumber)
	if err != nil {
		return nil, err
	}

	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	s.publishAndClear(ctx, req)

	s.logger.Info("Maintenance request created",
		zap.String("request_id", req.ID.String()),
		zap.String("student_id", req.StudentID.String()),
		zap.String("urgency", string(req.Urgency)),
		zap.String("room_number", req.RoomNumber))

	result := toMaintenanceResult(req)
	return &result, nil
}

// Update applies admin changes to a request
func (s *MaintenanceService) Update(ctx context.Context, input UpdateMaintenanceInput) (*MaintenanceResult, error) {
	req, err := s.requestRepo.FindByID(ctx, input.RequestID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if err := req.SetTitle(*input.Title); err != nil {
			return nil, err
		}
	}
	if input.Description != nil {
		if err := req.SetDescription(*input.Description); err != nil {
			return nil, err
		}
	}
	if input.Urgency != nil {
		if err := req.SetUrgency(*input.Urgency); err != nil {
			return nil, err
		}
	}
	if input.Status != nil {
		if err := req.SetStatus(*input.Status); err != nil {
			return nil, err
		}
	}
	if input.RoomNumber != nil {
		req.SetRoomNumber(*input.RoomNumber)
	}

	if err := s.requestRepo.Update(ctx, req); err != nil {
		return nil, err
	}

	result := toMaintenanceResult(req)
	return &result, nil
}

// UploadAttachment stores a photo or document and attaches it to the
// request. Storage failures surface as UPLOAD_FAILED.
func (s *MaintenanceService) UploadAttachment(ctx context.Context, requestID uuid.UUID, content io.Reader, filename, contentType string) (*MaintenanceResult, error) {
	req, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	storageID, fileURL, err := s.storage.Upload(ctx, content, filename, contentType, attachmentCategory)
	if err != nil {
		s.logger.Error("Attachment upload failed",
			zap.String("request_id", requestID.String()),
			zap.Error(err))
		return nil, shared.ErrUploadFailed
	}

	req.AttachFile(storageID, fileURL)
	if err := s.requestRepo.Update(ctx, req); err != nil {
		return nil, err
	}

	result := toMaintenanceResult(req)
	return &result, nil
}

// Get returns a single request
func (s *MaintenanceService) Get(ctx context.Context, requestID uuid.UUID) (*MaintenanceResult, error) {
	req, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	result := toMaintenanceResult(req)
	return &result, nil
}

// List returns requests matching the filter, newest first
func (s *MaintenanceService) List(ctx context.Context, filter facility.MaintenanceRequestFilter) ([]MaintenanceResult, error) {
	reqs, err := s.requestRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	results := make([]MaintenanceResult, len(reqs))
	for i, req := range reqs {
		results[i] = toMaintenanceResult(req)
	}
	return results, nil
}

// Delete removes a request
func (s *MaintenanceService) Delete(ctx context.Context, requestID uuid.UUID) error {
	if _, err := s.requestRepo.FindByID(ctx, requestID); err != nil {
		return err
	}
	return s.requestRepo.Delete(ctx, requestID)
}

func (s *MaintenanceService) publishAndClear(ctx context.Context, req *facility.MaintenanceRequest) {
	events := req.GetDomainEvents()
	req.ClearDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	// Errors are logged by the event bus, not propagated
	_ = s.eventPublisher.Publish(ctx, events...)
}

func toMaintenanceResult(req *facility.MaintenanceRequest) MaintenanceResult {
	return MaintenanceResult{
		ID:            req.ID,
		StudentID:     req.StudentID,
		Title:         req.Title,
		Description:   req.Description,
		Urgency:       req.Urgency,
		Status:        req.Status,
		RoomNumber:    req.RoomNumber,
		AttachmentURL: req.AttachmentURL,
		ResolvedAt:    req.ResolvedAt,
		CreatedAt:     req.CreatedAt,
	}
}

func isNotFound(err error) bool {
	var domainErr *shared.DomainError
	return errors.As(err, &domainErr) && domainErr.Code == shared.ErrNotFound.Code
}
