package repository

import (
	"context"
	"time"

	"github.com/cognisync/cognisync-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCalendarRepository is a GORM implementation of CalendarRepository
type GormCalendarRepository struct {
	db *gorm.DB
}

// NewCalendarRepository creates a new CalendarRepository
func NewCalendarRepository(db *gorm.DB) CalendarRepository {
	return &GormCalendarRepository{db: db}
}

// Upsert writes events keyed by (user_id, source, external_id)
func (r *GormCalendarRepository) Upsert(ctx context.Context, events []models.CalendarEvent) error {
	if len(events) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "source"}, {Name: "external_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "start_at", "end_at", "updated_at"}),
		}).
		Create(&events).Error
}

func (r *GormCalendarRepository) FindByID(ctx context.Context, id uint64) (*models.CalendarEvent, error) {
	var event models.CalendarEvent
	if err := r.db.WithContext(ctx).First(&event, id).Error; err != nil {
		return nil, translate(err)
	}
	return &event, nil
}

// ListByUser returns a user's events ordered by start, optionally bounded to [from, to)
func (r *GormCalendarRepository) ListByUser(ctx context.Context, userID uint64, from, to *time.Time) ([]models.CalendarEvent, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if from != nil {
		query = query.Where("start_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("start_at < ?", *to)
	}

	events := []models.CalendarEvent{}
	err := query.Order("start_at ASC").Order("id ASC").Find(&events).Error
	return events, err
}

func (r *GormCalendarRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&models.CalendarEvent{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
