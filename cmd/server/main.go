package main

import (
	"log/slog"
	"os"

	_ "todo/docs"
	"todo/internal/config"
	"todo/internal/logging"
	"todo/internal/server"
)

// @title           Todo API
// @version         1.0
// @description     Todo lists, items and tags with soft deletion and filtered paging.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	cfg := config.Load()

	logger := logging.New(os.Stdout, cfg.LogFormat, cfg.LogLevel)
	slog.SetDefault(logger)

	s, err := server.Init(cfg, logger)
	if err != nil {
		logger.Error("server initialization failed", "error", err)
		os.Exit(1)
	}

	s.Run()
}
