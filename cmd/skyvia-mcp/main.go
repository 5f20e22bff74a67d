package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"

	"github.com/angelmondragon/skyvia-mcp/api/tools"
	"github.com/angelmondragon/skyvia-mcp/internal/skyvia"
	"github.com/angelmondragon/skyvia-mcp/pkg/config"
	"github.com/angelmondragon/skyvia-mcp/pkg/logger"
)

func main() {
	apiToken := flag.String("skyvia-api-token", "", "Skyvia API token, overrides the "+config.EnvAPIToken+" environment variable")
	flag.Parse()

	logg := logger.New(logger.Options{ServiceName: "skyvia-mcp"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "skyvia-mcp",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	tokens := skyvia.NewTokenSource()
	if *apiToken != "" {
		if err := tokens.Override(*apiToken); err != nil {
			logg.Error(context.Background(), "invalid --skyvia-api-token value", err)
			os.Exit(1)
		}
	}
	if _, err := tokens.Resolve(); err != nil {
		logg.Error(context.Background(), "no API token configured", err)
		os.Exit(1)
	}

	client, err := skyvia.NewClient(cfg.API, tokens, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create API client", err)
		os.Exit(1)
	}

	s := server.NewMCPServer(
		config.ServerName,
		config.ServerVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	tools.Register(s, client, logg)

	logg.Info(context.Background(), "serving MCP over stdio")
	if err := server.ServeStdio(s); err != nil {
		logg.Error(context.Background(), "server stopped", err)
		os.Exit(1)
	}
}
