package housing

import (
	"context"

	"github.com/dormsync/backend/internal/domain/housing"
	"github.com/dormsync/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RoomService handles room management
type RoomService struct {
	roomRepo  housing.RoomRepository
	occupancy *housing.OccupancyService
	logger    *zap.Logger
}

// NewRoomService creates a new room service
func NewRoomService(roomRepo housing.RoomRepository, occupants housing.OccupancyCounter, logger *zap.Logger) *RoomService {
	return &RoomService{
		roomRepo:  roomRepo,
		occupancy: housing.NewOccupancyService(occupants),
		logger:    logger,
	}
}

// CreateRoomInput contains the input for creating a room
type CreateRoomInput struct {
	Code     string
	Capacity int
}

// UpdateRoomInput contains the input for updating a room.
// Nil pointers leave the corresponding field untouched.
type UpdateRoomInput struct {
	RoomID   uuid.UUID
	Code     *string
	Capacity *int
}

// RoomResult is a room with its current occupant count
type RoomResult struct {
	ID            uuid.UUID
	Code          string
	Capacity      int
	OccupantCount int64
}

// Create creates a new room
func (s *RoomService) Create(ctx context.Context, input CreateRoomInput) (*RoomResult, error) {
	taken, err := s.roomRepo.ExistsByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError("ROOM_CODE_ALREADY_EXISTS", "Room code is already in use")
	}

	room, err := housing.NewRoom(input.Code, input.Capacity)
	if err != nil {
		return nil, err
	}

	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, err
	}

	s.logger.Info("Room created",
		zap.String("room_id", room.ID.String()),
		zap.String("code", room.Code),
		zap.Int("capacity", room.Capacity))

	return &RoomResult{ID: room.ID, Code: room.Code, Capacity: room.Capacity}, nil
}

// Update updates a room's code or capacity. Shrinking capacity below the
// current occupant count is allowed; the invariant blocks new
// assignments rather than evicting students.
func (s *RoomService) Update(ctx context.Context, input UpdateRoomInput) (*RoomResult, error) {
	room, err := s.roomRepo.FindByID(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}

	if input.Code != nil && *input.Code != room.Code {
		taken, err := s.roomRepo.ExistsByCode(ctx, *input.Code)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, shared.NewDomainError("ROOM_CODE_ALREADY_EXISTS", "Room code is already in use")
		}
		if err := room.SetCode(*input.Code); err != nil {
			return nil, err
		}
	}

	if input.Capacity != nil {
		if err := room.SetCapacity(*input.Capacity); err != nil {
			return nil, err
		}
	}

	if err := s.roomRepo.Update(ctx, room); err != nil {
		return nil, err
	}

	s.logger.Info("Room updated", zap.String("room_id", room.ID.String()))

	return &RoomResult{ID: room.ID, Code: room.Code, Capacity: room.Capacity}, nil
}

// Get returns a single room
func (s *RoomService) Get(ctx context.Context, roomID uuid.UUID) (*RoomResult, error) {
	room, err := s.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return &RoomResult{ID: room.ID, Code: room.Code, Capacity: room.Capacity}, nil
}

// List returns all rooms with their occupant counts
func (s *RoomService) List(ctx context.Context) ([]RoomResult, error) {
	rooms, err := s.roomRepo.FindAllWithOccupancy(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]RoomResult, len(rooms))
	for i, r := range rooms {
		results[i] = RoomResult{
			ID:            r.Room.ID,
			Code:          r.Room.Code,
			Capacity:      r.Room.Capacity,
			OccupantCount: r.OccupantCount,
		}
	}
	return results, nil
}

// Delete removes a room. Rooms with assigned students are refused.
func (s *RoomService) Delete(ctx context.Context, roomID uuid.UUID) error {
	if _, err := s.roomRepo.FindByID(ctx, roomID); err != nil {
		return err
	}

	if err := s.occupancy.EnsureDeletable(ctx, roomID); err != nil {
		return err
	}

	if err := s.roomRepo.Delete(ctx, roomID); err != nil {
		return err
	}

	s.logger.Info("Room deleted", zap.String("room_id", roomID.String()))
	return nil
}
