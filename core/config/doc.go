// Package config provides configuration management for the wallet state service.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Storage: snapshot medium and S3/MinIO settings
//   - Redis: Redis medium settings
//   - Database: MySQL or SQLite connection details for the sql medium
//   - Log: Logging level and format
//   - Hydration: grace period, auto-reconnect, platforms and persistence
//
// Every field carries a default tag; nested keys map to environment variables
// such as HYDRATION_GRACE_PERIOD or STORAGE_OBJECT_BUCKET.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Hydration.GracePeriod)
package config
