package housing

import (
	"context"

	"github.com/dormsync/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OccupancyService enforces the room-capacity invariant. It must be called
// inside the transaction that writes the student's room assignment, with
// the room row locked (FindByIDForUpdate), so that two concurrent
// enrollments cannot both pass the count check.
type OccupancyService struct {
	occupants OccupancyCounter
}

// NewOccupancyService creates a new occupancy service
func NewOccupancyService(occupants OccupancyCounter) *OccupancyService {
	return &OccupancyService{occupants: occupants}
}

// EnsureCapacity rejects an assignment that would push the room past its
// capacity. excludeUserID skips the student being re-saved so that a no-op
// save of an occupant does not count them twice.
func (s *OccupancyService) EnsureCapacity(ctx context.Context, room *Room, excludeUserID *uuid.UUID) error {
	count, err := s.occupants.CountByRoomID(ctx, room.ID, excludeUserID)
	if err != nil {
		return err
	}

	if count >= int64(room.Capacity) {
		return shared.ErrRoomFull
	}

	return nil
}

// EnsureDeletable rejects deletion of a room that still has occupants
func (s *OccupancyService) EnsureDeletable(ctx context.Context, roomID uuid.UUID) error {
	occupied, err := s.occupants.ExistsByRoomID(ctx, roomID)
	if err != nil {
		return err
	}

	if occupied {
		return shared.ErrRoomNotEmpty
	}

	return nil
}
