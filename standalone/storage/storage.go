package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// dataDirName names the per-user data directory.
const dataDirName = "efuse"

// Layout of the data directory.
const (
	configFile    = "config.json"
	savesDir      = "saves"
	screenshotDir = "screenshots"
	// SystemFilesDir holds ROM overrides and other engine support files.
	// The harness hands the data directory to the core as its system
	// directory, and the core looks below it in this folder.
	SystemFilesDir = "fuse"
)

// GetBaseDir returns the per-user data directory: Application Support on
// macOS, %APPDATA% on Windows and $XDG_DATA_HOME (or ~/.local/share)
// elsewhere.
func GetBaseDir() (string, error) {
	root, err := dataRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, dataDirName), nil
}

func dataRoot() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if dir := os.Getenv("APPDATA"); dir != "" {
			return dir, nil
		}
		return "", errors.New("APPDATA is not set")
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("home directory: %w", err)
		}
		return filepath.Join(home, "Library", "Application Support"), nil
	}
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share"), nil
}

// inBase joins name onto the data directory.
func inBase(name string) (string, error) {
	base, err := GetBaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, name), nil
}

// EnsureDirectories creates the data directory and its subfolders.
func EnsureDirectories() error {
	for _, name := range []string{".", savesDir, screenshotDir, SystemFilesDir} {
		dir, err := inBase(name)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

// GetConfigPath returns the path of config.json.
func GetConfigPath() (string, error) {
	return inBase(configFile)
}

// GetSavesDir returns the folder holding per-tape save state folders.
func GetSavesDir() (string, error) {
	return inBase(savesDir)
}

// GetScreenshotDir returns the screenshot folder.
func GetScreenshotDir() (string, error) {
	return inBase(screenshotDir)
}

// AtomicWriteJSON writes data as indented JSON through a temporary file
// that replaces path by rename, so a crash never leaves half a file.
func AtomicWriteJSON(path string, data any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, encoded, 0644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// ReadJSON decodes the JSON file at path into data. A missing file returns
// an error satisfying errors.Is(err, fs.ErrNotExist).
func ReadJSON(path string, data any) error {
	encoded, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(encoded, data); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}
