package housing

import (
	"strings"
	"time"

	"github.com/dormsync/backend/internal/domain/shared"
)

// Capacity bounds for a room
const (
	MinCapacity = 1
	MaxCapacity = 50
)

// Room represents a dormitory room.
// Invariant: the number of student profiles referencing a room never
// exceeds its capacity at the end of any transaction; the occupancy
// service enforces this under a row lock.
type Room struct {
	shared.BaseAggregateRoot
	Code     string
	Capacity int
}

// NewRoom creates a new room with a unique code and positive capacity
func NewRoom(code string, capacity int) (*Room, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_ROOM_CODE", "Room code cannot be empty")
	}
	if len(code) > 255 {
		return nil, shared.NewDomainError("INVALID_ROOM_CODE", "Room code cannot exceed 255 characters")
	}
	if err := validateCapacity(capacity); err != nil {
		return nil, err
	}

	room := &Room{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Capacity:          capacity,
	}

	return room, nil
}

// SetCode renames the room
func (r *Room) SetCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return shared.NewDomainError("INVALID_ROOM_CODE", "Room code cannot be empty")
	}
	if len(code) > 255 {
		return shared.NewDomainError("INVALID_ROOM_CODE", "Room code cannot exceed 255 characters")
	}

	r.Code = code
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// SetCapacity changes the room capacity. Shrinking below the current
// occupant count is allowed here; the occupancy invariant only blocks new
// assignments, it does not evict.
func (r *Room) SetCapacity(capacity int) error {
	if err := validateCapacity(capacity); err != nil {
		return err
	}

	r.Capacity = capacity
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

func validateCapacity(capacity int) error {
	if capacity < MinCapacity {
		return shared.NewDomainError("INVALID_CAPACITY", "Capacity must be at least 1")
	}
	if capacity > MaxCapacity {
		return shared.NewDomainError("INVALID_CAPACITY", "Capacity cannot exceed 50")
	}
	return nil
}
