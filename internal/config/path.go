package config

import (
	"os"
	"path/filepath"
	"runtime"
)

func Dir() string {
	if override := os.Getenv("RESTPAD_CONFIG_DIR"); override != "" {
		return override
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ".restpad"
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "restpad")
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "restpad")
	default:
		return filepath.Join(home, ".config", "restpad")
	}
}
