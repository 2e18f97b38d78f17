package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// User is an account created on first successful sign-in. There are no
// passwords anywhere; identity is proven by owning the email inbox.
type User struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	Email        string       `gorm:"uniqueIndex;not null" json:"email"`
	HasOnboarded bool         `gorm:"not null;default:false" json:"has_onboarded"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// VerificationToken is a single-use sign-in token. Only the SHA-256 hash
// is stored; the raw token travels in the magic link.
type VerificationToken struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	Email     string       `gorm:"index;not null"`
	TokenHash string       `gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time    `gorm:"not null"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (VerificationToken) TableName() string { return "verification_tokens" }

func (t VerificationToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// Session is a browser session, stored hashed like the sign-in token.
type Session struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	UserID    snowflake.ID `gorm:"index;not null"`
	TokenHash string       `gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time    `gorm:"not null"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
