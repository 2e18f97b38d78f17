package email

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/speedisha/speedisha/internal/config"
)

var Module = fx.Module("providers.email",
	fx.Provide(NewFromConfig),
)

func NewFromConfig(cfg config.Config, log *zap.Logger) Provider {
	if cfg.SMTPUser == "" || cfg.SMTPPassword == "" {
		log.Warn("smtp not configured, sign-in emails will not be delivered")
		return &NoOpProvider{}
	}
	return NewSMTP(Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})
}
