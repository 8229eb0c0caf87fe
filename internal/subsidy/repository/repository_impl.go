package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/solarishq/solaris/internal/subsidy/domain"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func New(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) CreateSubmission(ctx context.Context, sub *domain.Submission) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *repo) ListByUser(ctx context.Context, userID snowflake.ID) ([]domain.Submission, error) {
	var subs []domain.Submission
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&subs).Error
	return subs, err
}

func (r *repo) FindByID(ctx context.Context, userID, id snowflake.ID) (*domain.Submission, error) {
	var sub domain.Submission
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrSubmissionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}
