// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package config

import (
	"os"
)

type Config struct {
	Port            string
	AppVersion      string
	DataDir         string
	ModelBundleDir  string
	MaintenanceNote string
}

func Load() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	modelBundleDir := os.Getenv("MODEL_BUNDLE_DIR")
	if modelBundleDir == "" {
		modelBundleDir = "models"
	}

	return &Config{
		Port:            port,
		AppVersion:      "1.4.2",
		DataDir:         dataDir,
		ModelBundleDir:  modelBundleDir,
		MaintenanceNote: os.Getenv("MAINTENANCE_NOTE"),
	}, nil
}
