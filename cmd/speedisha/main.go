package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/speedisha/speedisha/internal/config"
	"github.com/speedisha/speedisha/internal/logger"
	"github.com/speedisha/speedisha/internal/migration"
	"github.com/speedisha/speedisha/internal/observability"
	"github.com/speedisha/speedisha/internal/server"
	"github.com/speedisha/speedisha/pkg/db"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
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
