// Package config provides configuration management for the service.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file (via godotenv).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: MySQL connection details for the document store
//   - Storage: S3/MinIO credentials and bucket settings for export archives
//   - Log: Logging level and format
//
// Defaults come from the `default` struct tags on each partial config and are
// registered recursively, so every key is overridable through the environment
// (e.g. SERVER_PORT, DATABASE_NAME, STORAGE_BUCKET).
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
