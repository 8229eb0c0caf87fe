package auth

import (
	"github.com/solarishq/solaris/internal/auth/repository"
	"github.com/solarishq/solaris/internal/auth/service"
	"github.com/solarishq/solaris/internal/auth/session"
	"go.uber.org/fx"
)

var Module = fx.Module("auth",
	session.Module,
	fx.Provide(
		repository.New,
		service.New,
	),
)
