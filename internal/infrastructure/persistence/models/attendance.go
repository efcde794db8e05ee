package models

import (
	"time"

	"github.com/dormsync/backend/internal/domain/attendance"
	"github.com/google/uuid"
)

// AttendanceLogModel is the persistence model for the attendance Log
// domain entity. The (student_id, date) pair is unique; the check-in
// race resolves on this constraint.
type AttendanceLogModel struct {
	BaseModel
	StudentID uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_student_date"`
	Date      time.Time         `gorm:"type:date;not null;uniqueIndex:idx_attendance_student_date;index"`
	CheckIn   *time.Time
	CheckOut  *time.Time
	Status    attendance.Status `gorm:"type:varchar(20);not null;default:'present'"`
}

// TableName returns the table name for GORM
func (AttendanceLogModel) TableName() string {
	return "attendance_logs"
}

// ToDomain converts the persistence model to a domain Log entity
func (m *AttendanceLogModel) ToDomain() *attendance.Log {
	return &attendance.Log{
		BaseEntity: m.BaseModel.ToDomain(),
		StudentID:  m.StudentID,
		Date:       m.Date,
		CheckIn:    m.CheckIn,
		CheckOut:   m.CheckOut,
		Status:     m.Status,
	}
}

// FromDomain populates the persistence model from a domain Log entity
func (m *AttendanceLogModel) FromDomain(l *attendance.Log) {
	m.FromDomainBaseEntity(l.BaseEntity)
	m.StudentID = l.StudentID
	m.Date = l.Date
	m.CheckIn = l.CheckIn
	m.CheckOut = l.CheckOut
	m.Status = l.Status
}
