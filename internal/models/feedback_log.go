package models

import "time"

type FeedbackLog struct {
	ID                   uint64    `gorm:"primarykey" json:"id"`
	UserID               uint64    `gorm:"not null" json:"user_id"`
	MoodScore            int       `gorm:"not null" json:"mood_score"`
	SensoryOverloadEvent bool      `gorm:"not null;default:false" json:"sensory_overload_event"`
	CognitiveLoad        *int      `json:"cognitive_load"`
	Notes                string    `gorm:"type:text" json:"notes"`
	CreatedAt            time.Time `json:"created_at"`
}
