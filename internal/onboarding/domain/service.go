package domain

import (
	"context"
	"errors"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/snowflake"
)

type CreateProfileRequest struct {
	UserID       snowflake.ID
	BusinessName string `json:"businessName"`
	OwnerName    string `json:"ownerName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
	Website      string `json:"website"`
	Primary      string `json:"primaryColor"`
	Secondary    string `json:"secondaryColor"`
	Accent       string `json:"accentColor"`
}

type UploadLogoRequest struct {
	UserID      snowflake.ID
	Filename    string
	ContentType string
	Data        []byte
}

type Service interface {
	// CreateProfile validates and stores the business profile, then
	// marks the user onboarded.
	CreateProfile(ctx context.Context, req CreateProfileRequest) (BusinessProfile, error)
	GetProfile(ctx context.Context, userID snowflake.ID) (BusinessProfile, error)
	// UploadLogo stores a logo ahead of profile creation and returns
	// its URL.
	UploadLogo(ctx context.Context, req UploadLogoRequest) (string, error)
}

var (
	ErrProfileNotFound = errors.New("profile_not_found")
	ErrProfileExists   = errors.New("profile_exists")
)

// FieldErrors maps field names to human-readable validation messages,
// mirroring what the onboarding form shows inline.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msg := range e {
		parts = append(parts, field+": "+msg)
	}
	return "invalid profile: " + strings.Join(parts, "; ")
}

var (
	phonePattern = regexp.MustCompile(`^\+?[\d\s-]{10,}$`)
	zipPattern   = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	hexPattern   = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

// Validate checks the request against the onboarding form's rules.
func (r CreateProfileRequest) Validate() error {
	errs := FieldErrors{}

	requireLen := func(field, value string, min int, msg string) {
		if utf8.RuneCountInString(strings.TrimSpace(value)) < min {
			errs[field] = msg
		}
	}
	requireLen("businessName", r.BusinessName, 2, "Business name must be at least 2 characters")
	requireLen("ownerName", r.OwnerName, 2, "Owner name must be at least 2 characters")
	requireLen("address", r.Address, 5, "Address must be at least 5 characters")
	requireLen("city", r.City, 2, "City must be at least 2 characters")
	requireLen("state", r.State, 2, "State must be at least 2 characters")

	if _, err := mail.ParseAddress(strings.TrimSpace(r.Email)); err != nil {
		errs["email"] = "Invalid email address"
	}
	if !phonePattern.MatchString(strings.TrimSpace(r.Phone)) {
		errs["phone"] = "Invalid phone number"
	}
	if !zipPattern.MatchString(strings.TrimSpace(r.ZipCode)) {
		errs["zipCode"] = "Invalid ZIP code"
	}
	if w := strings.TrimSpace(r.Website); w != "" {
		u, err := url.Parse(w)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs["website"] = "Invalid website URL"
		}
	}
	for field, value := range map[string]string{
		"primaryColor":   r.Primary,
		"secondaryColor": r.Secondary,
		"accentColor":    r.Accent,
	} {
		if value != "" && !hexPattern.MatchString(value) {
			errs[field] = "Invalid color"
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
