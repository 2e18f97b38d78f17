package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	authdomain "github.com/speedisha/speedisha/internal/auth/domain"
	builderdomain "github.com/speedisha/speedisha/internal/builder/domain"
	"github.com/speedisha/speedisha/internal/onboarding/domain"
	"github.com/speedisha/speedisha/internal/storage"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	AuthRepo authdomain.Repository
	Storage  storage.Provider
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	authRepo authdomain.Repository
	storage  storage.Provider
	now      func() time.Time
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("onboarding.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		authRepo: p.AuthRepo,
		storage:  p.Storage,
		now:      time.Now,
	}
}

func (s *Service) CreateProfile(ctx context.Context, req domain.CreateProfileRequest) (domain.BusinessProfile, error) {
	if err := req.Validate(); err != nil {
		return domain.BusinessProfile{}, err
	}

	existing, err := s.repo.FindByUserID(ctx, s.db, req.UserID)
	if err != nil {
		return domain.BusinessProfile{}, err
	}
	if existing != nil {
		return domain.BusinessProfile{}, domain.ErrProfileExists
	}

	colors := builderdomain.DefaultColorScheme()
	if req.Primary != "" {
		colors.Primary = req.Primary
	}
	if req.Secondary != "" {
		colors.Secondary = req.Secondary
	}
	if req.Accent != "" {
		colors.Accent = req.Accent
	}
	colorJSON, err := json.Marshal(colors)
	if err != nil {
		return domain.BusinessProfile{}, err
	}

	now := s.now().UTC()
	profile := domain.BusinessProfile{
		ID:           s.genID.Generate(),
		UserID:       req.UserID,
		BusinessName: strings.TrimSpace(req.BusinessName),
		OwnerName:    strings.TrimSpace(req.OwnerName),
		Email:        strings.TrimSpace(req.Email),
		Phone:        strings.TrimSpace(req.Phone),
		Address:      strings.TrimSpace(req.Address),
		City:         strings.TrimSpace(req.City),
		State:        strings.TrimSpace(req.State),
		ZipCode:      strings.TrimSpace(req.ZipCode),
		Website:      strings.TrimSpace(req.Website),
		ColorScheme:  datatypes.JSON(colorJSON),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, s.db, &profile); err != nil {
		return domain.BusinessProfile{}, err
	}
	if err := s.authRepo.MarkOnboarded(ctx, s.db, req.UserID); err != nil {
		return domain.BusinessProfile{}, err
	}

	s.log.Info("business profile created",
		zap.String("user_id", req.UserID.String()),
		zap.String("business", profile.BusinessName),
	)
	return profile, nil
}

func (s *Service) GetProfile(ctx context.Context, userID snowflake.ID) (domain.BusinessProfile, error) {
	profile, err := s.repo.FindByUserID(ctx, s.db, userID)
	if err != nil {
		return domain.BusinessProfile{}, err
	}
	if profile == nil {
		return domain.BusinessProfile{}, domain.ErrProfileNotFound
	}
	return *profile, nil
}

func (s *Service) UploadLogo(ctx context.Context, req domain.UploadLogoRequest) (string, error) {
	if len(req.Data) > builderdomain.MaxUploadSize {
		return "", builderdomain.ErrFileTooLarge
	}
	if !strings.HasPrefix(req.ContentType, "image/") {
		return "", builderdomain.ErrNotAnImage
	}

	key := storage.Key("business-logos", req.UserID.String(), req.Filename)
	return s.storage.Upload(ctx, key, req.ContentType, req.Data)
}
