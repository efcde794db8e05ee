package models

import (
	"github.com/dormsync/backend/internal/domain/housing"
)

// RoomModel is the persistence model for the Room domain entity.
type RoomModel struct {
	AggregateModel
	Code     string `gorm:"type:varchar(20);not null;uniqueIndex:idx_rooms_code"`
	Capacity int    `gorm:"not null"`
}

// TableName returns the table name for GORM
func (RoomModel) TableName() string {
	return "rooms"
}

// ToDomain converts the persistence model to a domain Room entity
func (m *RoomModel) ToDomain() *housing.Room {
	return &housing.Room{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Code:              m.Code,
		Capacity:          m.Capacity,
	}
}

// FromDomain populates the persistence model from a domain Room entity
func (m *RoomModel) FromDomain(r *housing.Room) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.Code = r.Code
	m.Capacity = r.Capacity
}
