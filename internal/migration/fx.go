package migration

import (
	"github.com/bwmarrin/snowflake"
	authdomain "github.com/solarishq/solaris/internal/auth/domain"
	"github.com/solarishq/solaris/internal/config"
	projectdomain "github.com/solarishq/solaris/internal/project/domain"
	"github.com/solarishq/solaris/internal/seed"
	subsidydomain "github.com/solarishq/solaris/internal/subsidy/domain"
	trackerdomain "github.com/solarishq/solaris/internal/tracker/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, genID *snowflake.Node) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// sqlite and mysql dev databases track the models directly.
			if err := conn.AutoMigrate(
				&authdomain.User{},
				&authdomain.Session{},
				&subsidydomain.Submission{},
				&projectdomain.Project{},
				&trackerdomain.EnergyLog{},
			); err != nil {
				return err
			}
		}

		if cfg.SeedDemoUser {
			return seed.EnsureDemoUser(conn, genID)
		}
		return nil
	}),
)
