package database

import (
	"fmt"

	"github.com/cognisync/cognisync-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AddIndexes adds the composite indexes behind the per-user list queries
func AddIndexes(db *gorm.DB, log *zap.Logger) error {
	indexes := []struct {
		model   interface{}
		table   string
		name    string
		columns string
	}{
		// Non-privileged task listing filters on assignee then status
		{&models.Task{}, "tasks", "idx_tasks_assigned_to_status", "assigned_to, status"},
		{&models.Task{}, "tasks", "idx_tasks_due_date", "due_date"},

		// Membership lookups for schedule listing
		{&models.ScheduleMember{}, "schedule_members", "idx_schedule_members_user_id", "user_id"},

		{&models.FeedbackLog{}, "feedback_logs", "idx_feedback_logs_user_created", "user_id, created_at"},
		{&models.CalendarEvent{}, "calendar_events", "idx_calendar_events_user_start", "user_id, start_at"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.model, idx.name) {
			log.Debug("Index already exists, skipping", zap.String("index", idx.name))
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info("Created index", zap.String("index", idx.name), zap.String("table", idx.table))
	}

	return nil
}
