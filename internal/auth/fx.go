package auth

import (
	"go.uber.org/fx"

	"github.com/speedisha/speedisha/internal/auth/repository"
	"github.com/speedisha/speedisha/internal/auth/service"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
