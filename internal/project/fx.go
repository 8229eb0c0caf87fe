package project

import (
	"github.com/solarishq/solaris/internal/project/repository"
	"github.com/solarishq/solaris/internal/project/service"
	"go.uber.org/fx"
)

var Module = fx.Module("project",
	fx.Provide(
		repository.New,
		service.New,
	),
)
