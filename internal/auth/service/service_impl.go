package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/speedisha/speedisha/internal/auth/domain"
	"github.com/speedisha/speedisha/internal/config"
	"github.com/speedisha/speedisha/internal/providers/email"
	"github.com/speedisha/speedisha/internal/ratelimit"
)

// Resend limits: one resend every 30 seconds per address, small burst.
const (
	resendRate  = 1.0 / 30.0
	resendBurst = 2
)

type Params struct {
	fx.In

	Config  config.Config
	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    domain.Repository
	Email   email.Provider
	Limiter *ratelimit.TokenBucket `optional:"true"`
}

type Service struct {
	cfg     config.Config
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	repo    domain.Repository
	email   email.Provider
	limiter *ratelimit.TokenBucket
	now     func() time.Time
}

func New(p Params) domain.Service {
	return &Service{
		cfg:     p.Config,
		db:      p.DB,
		log:     p.Log.Named("auth.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		email:   p.Email,
		limiter: p.Limiter,
		now:     time.Now,
	}
}

func (s *Service) SignIn(ctx context.Context, req domain.SignInRequest) error {
	addr, err := normalizeEmail(req.Email)
	if err != nil {
		return domain.ErrInvalidEmail
	}

	raw, hash, err := newToken()
	if err != nil {
		return fmt.Errorf("generate sign-in token: %w", err)
	}

	now := s.now().UTC()
	// A new link always supersedes outstanding ones for the address.
	if err := s.repo.DeleteTokensForEmail(ctx, s.db, addr); err != nil {
		return err
	}
	if err := s.repo.InsertToken(ctx, s.db, &domain.VerificationToken{
		ID:        s.genID.Generate(),
		Email:     addr,
		TokenHash: hash,
		ExpiresAt: now.Add(domain.TokenTTL),
		CreatedAt: now,
	}); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/auth/verify?token=%s&email=%s",
		s.cfg.BaseURL, raw, url.QueryEscape(addr))
	if err := s.email.Send(ctx, []string{addr}, "Sign in to Speedisha", signInBody(link)); err != nil {
		return fmt.Errorf("send sign-in email: %w", err)
	}

	s.log.Info("sign-in link issued", zap.String("email", addr))
	return nil
}

func (s *Service) Resend(ctx context.Context, req domain.SignInRequest) error {
	addr, err := normalizeEmail(req.Email)
	if err != nil {
		return domain.ErrInvalidEmail
	}

	if s.limiter != nil {
		res, err := s.limiter.Allow(ctx, "signin:resend:"+addr, resendRate, resendBurst)
		if err != nil {
			s.log.Warn("resend rate limit check failed", zap.Error(err))
		} else if !res.Allowed {
			return domain.ErrResendLimited
		}
	}
	return s.SignIn(ctx, domain.SignInRequest{Email: addr})
}

func (s *Service) Verify(ctx context.Context, req domain.VerifyRequest) (domain.VerifyResult, error) {
	addr, err := normalizeEmail(req.Email)
	if err != nil {
		return domain.VerifyResult{}, domain.ErrInvalidEmail
	}
	if req.Token == "" {
		return domain.VerifyResult{}, domain.ErrInvalidToken
	}

	token, err := s.repo.FindTokenByHash(ctx, s.db, hashToken(req.Token))
	if err != nil {
		return domain.VerifyResult{}, err
	}
	if token == nil || token.Email != addr {
		return domain.VerifyResult{}, domain.ErrInvalidToken
	}

	// Single use, valid or not.
	if err := s.repo.DeleteToken(ctx, s.db, token.ID); err != nil {
		return domain.VerifyResult{}, err
	}
	if token.Expired(s.now()) {
		return domain.VerifyResult{}, domain.ErrTokenExpired
	}

	user, err := s.repo.FindUserByEmail(ctx, s.db, addr)
	if err != nil {
		return domain.VerifyResult{}, err
	}
	if user == nil {
		now := s.now().UTC()
		user = &domain.User{
			ID:        s.genID.Generate(),
			Email:     addr,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.repo.InsertUser(ctx, s.db, user); err != nil {
			return domain.VerifyResult{}, err
		}
		s.log.Info("user created", zap.String("user_id", user.ID.String()))
	}

	raw, hash, err := newToken()
	if err != nil {
		return domain.VerifyResult{}, fmt.Errorf("generate session token: %w", err)
	}

	now := s.now().UTC()
	expiresAt := now.Add(domain.SessionTTL)
	if err := s.repo.InsertSession(ctx, s.db, &domain.Session{
		ID:        s.genID.Generate(),
		UserID:    user.ID,
		TokenHash: hash,
		ExpiresAt: expiresAt,
		CreatedAt: now,
	}); err != nil {
		return domain.VerifyResult{}, err
	}

	return domain.VerifyResult{
		User:         *user,
		SessionToken: raw,
		ExpiresAt:    expiresAt,
	}, nil
}

func (s *Service) CurrentUser(ctx context.Context, sessionToken string) (domain.User, error) {
	if sessionToken == "" {
		return domain.User{}, domain.ErrNotSignedIn
	}

	session, err := s.repo.FindSessionByHash(ctx, s.db, hashToken(sessionToken))
	if err != nil {
		return domain.User{}, err
	}
	if session == nil {
		return domain.User{}, domain.ErrNotSignedIn
	}
	if session.Expired(s.now()) {
		_ = s.repo.DeleteSession(ctx, s.db, session.ID)
		return domain.User{}, domain.ErrSessionExpired
	}

	user, err := s.repo.FindUserByID(ctx, s.db, session.UserID)
	if err != nil {
		return domain.User{}, err
	}
	if user == nil {
		return domain.User{}, domain.ErrNotSignedIn
	}
	return *user, nil
}

func (s *Service) Logout(ctx context.Context, sessionToken string) error {
	if sessionToken == "" {
		return nil
	}
	session, err := s.repo.FindSessionByHash(ctx, s.db, hashToken(sessionToken))
	if err != nil || session == nil {
		return err
	}
	return s.repo.DeleteSession(ctx, s.db, session.ID)
}

func normalizeEmail(raw string) (string, error) {
	addr := strings.ToLower(strings.TrimSpace(raw))
	if addr == "" {
		return "", domain.ErrInvalidEmail
	}
	parsed, err := mail.ParseAddress(addr)
	if err != nil {
		return "", domain.ErrInvalidEmail
	}
	return parsed.Address, nil
}

func newToken() (raw, hash string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	raw = hex.EncodeToString(buf)
	return raw, hashToken(raw), nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func signInBody(link string) string {
	return fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto;">
  <h2>Sign in to Speedisha</h2>
  <p>Click the button below to sign in. This link expires in 24 hours and can only be used once.</p>
  <p style="margin: 32px 0;">
    <a href="%s" style="background: #518b03; color: #ffffff; padding: 12px 24px; border-radius: 6px; text-decoration: none;">Sign in</a>
  </p>
  <p style="color: #6b7280; font-size: 13px;">If you did not request this email, you can safely ignore it.</p>
</div>`, link)
}
