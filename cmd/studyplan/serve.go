package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/marcus/studyplan/internal/config"
	"github.com/marcus/studyplan/internal/mail"
	"github.com/marcus/studyplan/internal/server"
)

var (
	servePort   int
	storageRoot string
	configPath  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for generating and tracking study plans.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&storageRoot, "storage-root", "", "Directory for uploaded files (defaults to STORAGE_ROOT or ./data)")
	serveCmd.Flags().StringVar(&configPath, "config", "", "Optional JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := envConfig()
	cfg.Port = servePort
	if storageRoot != "" {
		cfg.StorageRoot = storageRoot
	}

	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.StorageRoot == "" {
		cfg.StorageRoot = "./data"
	}

	srv, err := server.New(server.Config{
		Port:            cfg.Port,
		DatabaseURL:     cfg.DatabaseURL,
		GeminiAPIKey:    cfg.GeminiAPIKey,
		StorageRoot:     cfg.StorageRoot,
		MarketSourceURL: cfg.MarketSourceURL,
		SMTP: mail.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// envConfig reads configuration from environment variables.
func envConfig() config.Config {
	cfg := config.Config{
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		StorageRoot:     os.Getenv("STORAGE_ROOT"),
		MarketSourceURL: os.Getenv("MARKET_SOURCE_URL"),
		SMTPHost:        os.Getenv("SMTP_HOST"),
		SMTPUsername:    os.Getenv("SMTP_USERNAME"),
		SMTPPassword:    os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:        os.Getenv("SMTP_FROM"),
	}
	if port := os.Getenv("SMTP_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil {
			cfg.SMTPPort = n
		}
	}
	return cfg
}
