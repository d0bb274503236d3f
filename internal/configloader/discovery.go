package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Layer names where a configuration file was found.
type Layer string

// Config file layers, lowest precedence first.
const (
	LayerUser     Layer = "user"
	LayerProject  Layer = "project"
	LayerExplicit Layer = "explicit"
)

// layerFile is one configuration file to merge.
type layerFile struct {
	layer Layer
	path  string
}

// ProjectConfigFiles are the names looked for in each directory during the
// upward search, first match wins.
//
//nolint:gochecknoglobals // Read-only lookup table.
var ProjectConfigFiles = []string{
	".docscan.yml",
	".docscan.yaml",
	"docscan.yml",
	"docscan.yaml",
}

// userConfigFiles are the names accepted in the user config directory.
//
//nolint:gochecknoglobals // Read-only lookup table.
var userConfigFiles = []string{"config.yaml", "config.yml"}

// vcsRootMarkers end the upward search: a docs tree never inherits settings
// from outside its repository.
//
//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// configFiles lists the files Load merges, in precedence order. An explicit
// path replaces the project search but still sits above the user file.
func configFiles(ctx context.Context, opts LoadOptions, workDir string) ([]layerFile, error) {
	var files []layerFile

	if !opts.IgnoreUserConfig {
		if path := findUserConfig(); path != "" {
			files = append(files, layerFile{layer: LayerUser, path: path})
		}
	}

	if opts.ExplicitPath != "" {
		return append(files, layerFile{layer: LayerExplicit, path: opts.ExplicitPath}), nil
	}

	if !opts.IgnoreProjectConfig {
		path, err := FindProjectConfig(ctx, workDir)
		if err != nil {
			return nil, err
		}
		if path != "" {
			files = append(files, layerFile{layer: LayerProject, path: path})
		}
	}

	return files, nil
}

// userConfigDir is $XDG_CONFIG_HOME/docscan, falling back to ~/.config/docscan.
func userConfigDir() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "docscan")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "docscan")
}

// findUserConfig returns the user config file, or "" when there is none.
func findUserConfig() string {
	dir := userConfigDir()
	if dir == "" {
		return ""
	}
	return firstExisting(dir, userConfigFiles)
}

// FindProjectConfig walks from startDir towards the filesystem root and
// returns the first docscan config file it sees. The walk stops after the
// repository root or the home directory. "" means no project config.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", startDir, err)
	}

	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("search project config: %w", err)
		}

		if path := firstExisting(dir, ProjectConfigFiles); path != "" {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if isVCSRoot(dir) || dir == home || parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// firstExisting returns the first of names that is a regular file in dir.
func firstExisting(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}
