package subsidy

import (
	"github.com/solarishq/solaris/internal/subsidy/repository"
	"github.com/solarishq/solaris/internal/subsidy/service"
	"go.uber.org/fx"
)

var Module = fx.Module("subsidy",
	fx.Provide(
		repository.New,
		service.New,
	),
)
