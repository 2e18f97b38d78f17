package domain

import (
	"context"
	"errors"
	"time"
)

// Sign-in tokens live for a day; a verified browser session for a month.
const (
	TokenTTL   = 24 * time.Hour
	SessionTTL = 30 * 24 * time.Hour
)

type SignInRequest struct {
	Email string
}

type VerifyRequest struct {
	Email string
	Token string
}

// VerifyResult carries the raw session token once, for the cookie. It is
// never stored in this form.
type VerifyResult struct {
	User         User
	SessionToken string
	ExpiresAt    time.Time
}

type Service interface {
	// SignIn issues a fresh magic link, replacing any outstanding one
	// for the address.
	SignIn(ctx context.Context, req SignInRequest) error
	// Resend is SignIn behind a per-address rate limit.
	Resend(ctx context.Context, req SignInRequest) error
	// Verify consumes a magic-link token and opens a session,
	// creating the account on first sign-in.
	Verify(ctx context.Context, req VerifyRequest) (VerifyResult, error)
	CurrentUser(ctx context.Context, sessionToken string) (User, error)
	Logout(ctx context.Context, sessionToken string) error
}

var (
	ErrInvalidEmail   = errors.New("invalid_email")
	ErrInvalidToken   = errors.New("invalid_token")
	ErrTokenExpired   = errors.New("token_expired")
	ErrNotSignedIn    = errors.New("not_signed_in")
	ErrSessionExpired = errors.New("session_expired")
	ErrResendLimited  = errors.New("resend_limited")
)
