package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, profile *BusinessProfile) error
	FindByUserID(ctx context.Context, db *gorm.DB, userID snowflake.ID) (*BusinessProfile, error)
}
