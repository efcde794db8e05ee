package housing

import (
	"context"

	"github.com/google/uuid"
)

// RoomWithOccupancy pairs a room with its current occupant count
type RoomWithOccupancy struct {
	Room          *Room
	OccupantCount int64
}

// RoomRepository defines the interface for room persistence
type RoomRepository interface {
	// Create creates a new room
	Create(ctx context.Context, room *Room) error

	// Update updates an existing room
	Update(ctx context.Context, room *Room) error

	// Delete deletes a room by ID. Implementations must refuse to delete
	// a room that still has occupants.
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds a room by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Room, error)

	// FindByIDForUpdate finds a room by ID and locks its row for the
	// remainder of the transaction (SELECT ... FOR UPDATE). Callers use it
	// to serialize capacity checks; outside a transaction it behaves like
	// FindByID.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Room, error)

	// FindByCode finds a room by its unique code
	FindByCode(ctx context.Context, code string) (*Room, error)

	// FindAllWithOccupancy returns all rooms ordered by code, each with
	// its occupant count
	FindAllWithOccupancy(ctx context.Context) ([]RoomWithOccupancy, error)

	// ExistsByCode checks if a room code already exists
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

// OccupancyCounter counts current occupants of a room. The identity
// StudentProfileRepository satisfies it.
type OccupancyCounter interface {
	CountByRoomID(ctx context.Context, roomID uuid.UUID, excludeUserID *uuid.UUID) (int64, error)
	ExistsByRoomID(ctx context.Context, roomID uuid.UUID) (bool, error)
}
