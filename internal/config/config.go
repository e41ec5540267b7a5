package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvFFmpeg overrides every other source of the encoder path.
const EnvFFmpeg = "SLIDECAST_FFMPEG"

const (
	appDirName       = "SlideCast"
	settingsFileName = "config.yaml"
)

// Config holds the options of one CLI run.
type Config struct {
	FFmpegPath  string
	Workers     int
	WorkDir     string
	KeepWorkDir bool
	Verbose     bool
}

// Settings is the persisted part of the configuration.
type Settings struct {
	FFmpegPath string `yaml:"ffmpeg_path,omitempty"`
}

// SettingsPath returns <UserConfigDir>/SlideCast/config.yaml.
func SettingsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName, settingsFileName), nil
}

// Load reads settings from path. A missing file yields zero settings.
func Load(path string) (Settings, error) {
	var s Settings
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return s, err
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse %s: %w", path, err)
	}
	return s, nil
}

// Save writes settings to path, creating parent directories.
func Save(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(&s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// DefaultFFmpeg is the binary name looked up through PATH.
func DefaultFFmpeg() string {
	if runtime.GOOS == "windows" {
		return "ffmpeg.exe"
	}
	return "ffmpeg"
}

// ResolveFFmpegPath picks the encoder: $SLIDECAST_FFMPEG, then the settings
// file at settingsPath, then DefaultFFmpeg. An unreadable settings file is
// treated as empty.
func ResolveFFmpegPath(settingsPath string) string {
	if p := strings.TrimSpace(os.Getenv(EnvFFmpeg)); p != "" {
		return p
	}
	if settingsPath != "" {
		if s, err := Load(settingsPath); err == nil && s.FFmpegPath != "" {
			return s.FFmpegPath
		}
	}
	return DefaultFFmpeg()
}
