package onboarding

import (
	"go.uber.org/fx"

	"github.com/speedisha/speedisha/internal/onboarding/repository"
	"github.com/speedisha/speedisha/internal/onboarding/service"
)

var Module = fx.Module("onboarding.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
