package tracker

import (
	"github.com/solarishq/solaris/internal/tracker/repository"
	"github.com/solarishq/solaris/internal/tracker/service"
	"go.uber.org/fx"
)

var Module = fx.Module("tracker",
	fx.Provide(
		repository.New,
		service.New,
	),
)
