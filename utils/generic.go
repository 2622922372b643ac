package utils

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/docker/docker/pkg/namesgenerator"
)

// TimeNow returns epoch UTC.
func TimeNow() int64 {
	return time.Now().UTC().Unix()
}

// NormalizeDeviceName validates that final entity name is correct.
func NormalizeDeviceName(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	replacer := strings.NewReplacer("%", "_",
		"/", "_",
		"\\", "_",
		":", "_",
		";", "_",
		".", "_",
		"$", "_",
		"#", "",
		"-", "_",
		" ", "_")
	return replacer.Replace(raw)
}

// RandomTitle returns random human-readable name.
// Used when miner doesn't report its hostname.
func RandomTitle() string {
	return strings.Replace(namesgenerator.GetRandomName(0), "_", "-", -1)
}

// GetCurrentWorkingDir returns application working directory.
func GetCurrentWorkingDir() string {
	cwd, err := os.Getwd()
	if err != nil {
		panic("Failed to get current working dir")
	}

	return cwd
}

// GetDefaultConfigsDir returns default config directory which is cwd/configs.
func GetDefaultConfigsDir() string {
	if ConfigDir != "" {
		return ConfigDir
	}

	return fmt.Sprintf("%s/configs", GetCurrentWorkingDir())
}

// ConfigDir allows to re-write default config directory.
var ConfigDir = ""
