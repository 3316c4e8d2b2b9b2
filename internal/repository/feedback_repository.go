package repository

import (
	"context"

	"github.com/cognisync/cognisync-api/internal/database"
	"github.com/cognisync/cognisync-api/internal/models"
	"gorm.io/gorm"
)

// GormFeedbackRepository is a GORM implementation of FeedbackRepository
type GormFeedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository creates a new FeedbackRepository
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &GormFeedbackRepository{db: db}
}

func (r *GormFeedbackRepository) Create(ctx context.Context, log *models.FeedbackLog) error {
	return translate(r.db.WithContext(ctx).Create(log).Error)
}

func (r *GormFeedbackRepository) FindByID(ctx context.Context, id uint64) (*models.FeedbackLog, error) {
	var log models.FeedbackLog
	if err := r.db.WithContext(ctx).First(&log, id).Error; err != nil {
		return nil, translate(err)
	}
	return &log, nil
}

func (r *GormFeedbackRepository) List(ctx context.Context, filter FeedbackFilter) ([]models.FeedbackLog, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.FeedbackLog{})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("created_at DESC").Order("id DESC").
		Scopes(database.Paginate(filter.Page, filter.PageSize))

	logs := []models.FeedbackLog{}
	if err := listQuery.Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

func (r *GormFeedbackRepository) ListByUser(ctx context.Context, userID uint64) ([]models.FeedbackLog, error) {
	logs := []models.FeedbackLog{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").Order("id ASC").
		Find(&logs).Error
	return logs, err
}
