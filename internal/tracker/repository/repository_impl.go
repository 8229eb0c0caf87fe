package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/solarishq/solaris/internal/tracker/domain"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func New(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) Create(ctx context.Context, e *domain.EnergyLog) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repo) ListByUser(ctx context.Context, userID snowflake.ID) ([]domain.EnergyLog, error) {
	var logs []domain.EnergyLog
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date ASC, created_at ASC").
		Find(&logs).Error
	return logs, err
}
