package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	InsertToken(ctx context.Context, db *gorm.DB, token *VerificationToken) error
	FindTokenByHash(ctx context.Context, db *gorm.DB, hash string) (*VerificationToken, error)
	DeleteToken(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	DeleteTokensForEmail(ctx context.Context, db *gorm.DB, email string) error

	FindUserByEmail(ctx context.Context, db *gorm.DB, email string) (*User, error)
	FindUserByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*User, error)
	InsertUser(ctx context.Context, db *gorm.DB, user *User) error
	MarkOnboarded(ctx context.Context, db *gorm.DB, id snowflake.ID) error

	InsertSession(ctx context.Context, db *gorm.DB, session *Session) error
	FindSessionByHash(ctx context.Context, db *gorm.DB, hash string) (*Session, error)
	DeleteSession(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
