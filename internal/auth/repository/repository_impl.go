package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/speedisha/speedisha/internal/auth/domain"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertToken(ctx context.Context, db *gorm.DB, token *domain.VerificationToken) error {
	return db.WithContext(ctx).Create(token).Error
}

func (r *repo) FindTokenByHash(ctx context.Context, db *gorm.DB, hash string) (*domain.VerificationToken, error) {
	var token domain.VerificationToken
	err := db.WithContext(ctx).
		Where("token_hash = ?", hash).
		First(&token).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *repo) DeleteToken(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).
		Delete(&domain.VerificationToken{}, "id = ?", id).Error
}

func (r *repo) DeleteTokensForEmail(ctx context.Context, db *gorm.DB, email string) error {
	return db.WithContext(ctx).
		Delete(&domain.VerificationToken{}, "email = ?", email).Error
}

func (r *repo) FindUserByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.User, error) {
	var user domain.User
	err := db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repo) FindUserByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.User, error) {
	var user domain.User
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repo) InsertUser(ctx context.Context, db *gorm.DB, user *domain.User) error {
	return db.WithContext(ctx).Create(user).Error
}

func (r *repo) MarkOnboarded(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"has_onboarded": true,
			"updated_at":    time.Now().UTC(),
		}).Error
}

func (r *repo) InsertSession(ctx context.Context, db *gorm.DB, session *domain.Session) error {
	return db.WithContext(ctx).Create(session).Error
}

func (r *repo) FindSessionByHash(ctx context.Context, db *gorm.DB, hash string) (*domain.Session, error) {
	var session domain.Session
	err := db.WithContext(ctx).
		Where("token_hash = ?", hash).
		First(&session).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *repo) DeleteSession(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).
		Delete(&domain.Session{}, "id = ?", id).Error
}
