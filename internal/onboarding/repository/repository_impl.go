package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/speedisha/speedisha/internal/onboarding/domain"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, profile *domain.BusinessProfile) error {
	return db.WithContext(ctx).Create(profile).Error
}

func (r *repo) FindByUserID(ctx context.Context, db *gorm.DB, userID snowflake.ID) (*domain.BusinessProfile, error) {
	var profile domain.BusinessProfile
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
