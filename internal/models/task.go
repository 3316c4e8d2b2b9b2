package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusWaiting  TaskStatus = "waiting"
	TaskStatusProgress TaskStatus = "progress"
	TaskStatusReview   TaskStatus = "review"
	TaskStatusApproved TaskStatus = "approved"
)

// Valid reports whether s is one of the known task states. Any state may
// follow any other.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusWaiting, TaskStatusProgress, TaskStatusReview, TaskStatusApproved:
		return true
	}
	return false
}

type Task struct {
	ID                    uint64         `gorm:"primarykey" json:"id"`
	Name                  string         `gorm:"type:varchar(255);not null" json:"name"`
	Description           string         `gorm:"type:text" json:"description"`
	Status                TaskStatus     `gorm:"type:varchar(20);not null;default:'waiting'" json:"status"`
	AssignedTo            uint64         `gorm:"not null;index" json:"assigned_to"`
	AssignedBy            uint64         `gorm:"not null" json:"assigned_by"`
	Checked               bool           `gorm:"not null;default:false" json:"checked"`
	IsUpcoming            bool           `gorm:"not null;default:false" json:"is_upcoming"`
	DueDate               *time.Time     `json:"due_date"`
	CognitiveLoadEstimate *int           `json:"cognitive_load_estimate"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Assignee User `gorm:"foreignKey:AssignedTo" json:"-"`
	Assigner User `gorm:"foreignKey:AssignedBy" json:"-"`
}
