package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/solarishq/solaris/internal/assistant"
	"github.com/solarishq/solaris/internal/auth"
	"github.com/solarishq/solaris/internal/config"
	"github.com/solarishq/solaris/internal/journey"
	"github.com/solarishq/solaris/internal/migration"
	"github.com/solarishq/solaris/internal/observability"
	"github.com/solarishq/solaris/internal/project"
	"github.com/solarishq/solaris/internal/ratelimit"
	"github.com/solarishq/solaris/internal/redisconn"
	"github.com/solarishq/solaris/internal/report"
	"github.com/solarishq/solaris/internal/server"
	"github.com/solarishq/solaris/internal/subsidy"
	"github.com/solarishq/solaris/internal/tracker"
	"github.com/solarishq/solaris/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		redisconn.Module,
		db.Module,
		migration.Module,

		// Functional domains
		auth.Module,
		journey.Module,
		ratelimit.Module,
		subsidy.Module,
		project.Module,
		tracker.Module,
		assistant.Module,
		report.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
