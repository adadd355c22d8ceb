package main

import (
	"github.com/evowilliamson/todo/config"
	"github.com/evowilliamson/todo/di"
	"github.com/evowilliamson/todo/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	app := di.InitializeService()

	app.Sweeper.Start()
	app.HTTP.Serve()
}
