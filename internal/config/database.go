package config

import (
	"os"
	"path/filepath"
)

const (
	DB_NAME = "energy_monitor.db"
)

func DBPath() string {
	if dbPath := os.Getenv("ENERGY_MONITOR_DB_PATH"); dbPath != "" {
		return dbPath
	}

	return filepath.Join(DataDir(), DB_NAME)
}
