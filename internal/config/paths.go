// ABOUTME: Standard filesystem paths for stopwatch configuration
// ABOUTME: Resolves ~/.stopwatch/ for global and .stopwatch/ for project-local settings

package config

import (
	"os"
	"path/filepath"
)

const (
	globalDirName  = ".stopwatch"
	projectDirName = ".stopwatch"
	configFileName = "config.yaml"
)

// GlobalDir returns the user-global config directory (~/.stopwatch/).
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", globalDirName)
	}
	return filepath.Join(home, globalDirName)
}

// ProjectDir returns the project-local config directory (.stopwatch/ in root).
func ProjectDir(projectRoot string) string {
	return filepath.Join(projectRoot, projectDirName)
}

// GlobalConfigFile returns the path to the global config file.
func GlobalConfigFile() string {
	return filepath.Join(GlobalDir(), configFileName)
}

// ProjectConfigFile returns the path to the project-local config file.
func ProjectConfigFile(projectRoot string) string {
	return filepath.Join(ProjectDir(projectRoot), configFileName)
}
