package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# RoadBook Configuration

[journal]
# Default journal directory (empty means the current directory)
dir = ""
# Write ~ backup copies before overwriting journal files
backup = true
# Copy graph images when saving the journal to a new directory
copy_graphs = true

[ui]
# Enable colored output
color_enabled = true
# Date format
date_format = "2006-01-02"
# Emit JSON instead of tables
json_output = false

[logging]
# Log level: debug, info, warn, error
level = "info"
# Log to the console
console = true
# Log to a rotating file
file = false
# Log file path (empty means the default under ~/.config/roadbook/logs)
file_path = ""
# Rotation thresholds
max_size = 50
max_backups = 5
max_age = 30

[export]
# SQLite database file; relative paths resolve against the journal directory
path = "roadbook.db"
`

func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}

	return nil
}
