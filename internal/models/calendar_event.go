package models

import "time"

type CalendarEvent struct {
	ID         uint64     `gorm:"primarykey" json:"id"`
	UserID     uint64     `gorm:"not null;uniqueIndex:idx_calendar_events_source_ref" json:"user_id"`
	Source     string     `gorm:"type:varchar(50);not null;uniqueIndex:idx_calendar_events_source_ref" json:"source"`
	ExternalID string     `gorm:"type:varchar(255);not null;uniqueIndex:idx_calendar_events_source_ref" json:"external_id"`
	Title      string     `gorm:"type:varchar(255);not null" json:"title"`
	StartAt    time.Time  `gorm:"not null" json:"start_at"`
	EndAt      *time.Time `json:"end_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
