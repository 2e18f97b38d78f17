// Package migration keeps the database schema in step with the domain
// models at startup.
package migration

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	authdomain "github.com/speedisha/speedisha/internal/auth/domain"
	onboardingdomain "github.com/speedisha/speedisha/internal/onboarding/domain"
)

func Migrate(db *gorm.DB, log *zap.Logger) error {
	if err := db.AutoMigrate(
		&authdomain.User{},
		&authdomain.VerificationToken{},
		&authdomain.Session{},
		&onboardingdomain.BusinessProfile{},
	); err != nil {
		return err
	}
	log.Info("database schema up to date")
	return nil
}

var Module = fx.Module("migration",
	fx.Invoke(Migrate),
)
