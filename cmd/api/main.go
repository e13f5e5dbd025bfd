// Package main is the entry point for the Vivah Match API server, which
// serves profile search, featured listings, profiles, interests and
// authentication over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vivahmatch/backend/internal/config"
	"github.com/vivahmatch/backend/internal/handlers"
	"github.com/vivahmatch/backend/internal/server"
	"github.com/vivahmatch/backend/internal/utils"
)

// Version information is set during build time through linker flags.
var (
	// version represents the release version of the application.
	version = "dev"

	// commit is the git commit hash from which the application was built.
	commit = "none"

	// buildDate is the timestamp when the application was built.
	buildDate = "unknown"
)

// init loads environment variables from a .env file if present.
func init() {
	// Not finding a .env file is a non-fatal condition, as configuration
	// might be provided by other means.
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found or couldn't be loaded")
	}
}

func main() {
	var (
		configPath  string
		showVersion bool
	)

	flag.StringVar(&configPath, "config", "./configs/config.yaml", "Path to configuration file")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("Vivah Match API Server\nVersion: %s\nCommit: %s\nBuild Date: %s\n", version, commit, buildDate)
		os.Exit(0)
	}

	// Bootstrap logger until the configured one is in place
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Override version from build if available (not in dev mode)
	if version != "dev" {
		cfg.App.Version = version
	}

	utils.InitLogger(cfg)
	defer func() {
		if err := utils.CloseLogger(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to close log file: %v\n", err)
		}
	}()

	log.Info().
		Str("version", cfg.App.Version).
		Str("environment", cfg.App.Environment).
		Str("storage", cfg.Database.Driver).
		Msg("Starting Vivah Match API Server")

	utils.InitValidator()

	ctx := context.Background()
	srv, err := server.NewServer(ctx, cfg, handlers.VersionInfo{
		Version:     cfg.App.Version,
		Commit:      commit,
		BuildDate:   buildDate,
		Environment: cfg.App.Environment,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create server")
	}

	// Blocks until SIGINT/SIGTERM or a server error
	if err := srv.Run(ctx); err != nil {
		log.Error().Err(err).Msg("Server error")
		_ = utils.CloseLogger()
		os.Exit(1)
	}

	log.Info().Msg("Server exited")
}
