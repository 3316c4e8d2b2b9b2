package models

import (
	"time"

	"gorm.io/gorm"
)

type Schedule struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	Time      string         `gorm:"type:varchar(100)" json:"time"`
	StartAt   *time.Time     `json:"start_at"`
	EndAt     *time.Time     `json:"end_at"`
	Color     string         `gorm:"type:varchar(30)" json:"color"`
	CreatedBy uint64         `gorm:"not null" json:"created_by"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Members []ScheduleMember `gorm:"foreignKey:ScheduleID" json:"members,omitempty"`
}

type ScheduleMember struct {
	ScheduleID uint64    `gorm:"primarykey" json:"schedule_id"`
	UserID     uint64    `gorm:"primarykey" json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
