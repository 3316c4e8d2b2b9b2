package repository

import (
	"context"

	"github.com/cognisync/cognisync-api/internal/database"
	"github.com/cognisync/cognisync-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormScheduleRepository is a GORM implementation of ScheduleRepository
type GormScheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository creates a new ScheduleRepository
func NewScheduleRepository(db *gorm.DB) ScheduleRepository {
	return &GormScheduleRepository{db: db}
}

// CreateWithMembers creates the schedule and one member row per user in a transaction
func (r *GormScheduleRepository) CreateWithMembers(ctx context.Context, schedule *models.Schedule, memberIDs []uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(schedule).Error; err != nil {
			return translate(err)
		}

		if len(memberIDs) == 0 {
			schedule.Members = []models.ScheduleMember{}
			return nil
		}

		members := make([]models.ScheduleMember, len(memberIDs))
		for i, userID := range memberIDs {
			members[i] = models.ScheduleMember{
				ScheduleID: schedule.ID,
				UserID:     userID,
			}
		}
		if err := tx.Omit(clause.Associations).Create(&members).Error; err != nil {
			return translate(err)
		}

		schedule.Members = members
		return nil
	})
}

// FindByID finds a schedule by ID with its members
func (r *GormScheduleRepository) FindByID(ctx context.Context, id uint64) (*models.Schedule, error) {
	var schedule models.Schedule
	if err := r.db.WithContext(ctx).Preload("Members").First(&schedule, id).Error; err != nil {
		return nil, translate(err)
	}
	return &schedule, nil
}

// List retrieves schedules, restricted to one member's when MemberID is set
func (r *GormScheduleRepository) List(ctx context.Context, filter ScheduleFilter) ([]models.Schedule, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Schedule{})

	if filter.MemberID != nil {
		memberSubQuery := r.db.Model(&models.ScheduleMember{}).
			Select("1").
			Where("schedule_members.schedule_id = schedules.id").
			Where("schedule_members.user_id = ?", *filter.MemberID)
		query = query.Where("EXISTS (?)", memberSubQuery)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("schedules.id DESC").
		Scopes(database.Paginate(filter.Page, filter.PageSize))

	schedules := []models.Schedule{}
	if err := listQuery.Preload("Members").Find(&schedules).Error; err != nil {
		return nil, 0, err
	}

	return schedules, total, nil
}

// Delete soft deletes the schedule and removes its members in a transaction
func (r *GormScheduleRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("schedule_id = ?", id).Delete(&models.ScheduleMember{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Schedule{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
