package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// Config holds the settings logdesk reads from its TOML file.
type Config struct {
	LogDir       string
	APIBind      string
	Extension    string
	Include      []string
	Known        []string
	DefaultCount int
	Parallelism  int
}

// Keys shared by the TOML file, viper overrides and LOGDESK_* env vars.
const (
	KeyLogDir       = "log_dir"
	KeyAPIBind      = "api_bind"
	KeyExtension    = "extension"
	KeyDefaultCount = "default_count"
	KeyParallelism  = "parallelism"
)

const (
	defaultConfigPath  = "~/.config/logdesk/config.toml"
	defaultLogDir      = "~/.local/share/logdesk/logs"
	defaultAPIBind     = "127.0.0.1:8181"
	defaultExtension   = ".log"
	defaultCount       = 200
	defaultParallelism = 4
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		LogDir:       mustExpand(defaultLogDir),
		APIBind:      defaultAPIBind,
		Extension:    defaultExtension,
		DefaultCount: defaultCount,
		Parallelism:  defaultParallelism,
	}
}

// Load locates and parses the logdesk config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		LogDir       string   `toml:"log_dir"`
		APIBind      string   `toml:"api_bind"`
		Extension    string   `toml:"extension"`
		Include      []string `toml:"include"`
		Known        []string `toml:"known_sources"`
		DefaultCount *int     `toml:"default_count"`
		Parallelism  int      `toml:"parallelism"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.LogDir); v != "" {
		cfg.LogDir = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.APIBind); v != "" {
		cfg.APIBind = v
	}
	if v := strings.TrimSpace(raw.Extension); v != "" {
		cfg.Extension = normalizeExtension(v)
	}
	cfg.Include = trimAll(raw.Include)
	cfg.Known = trimAll(raw.Known)
	if raw.DefaultCount != nil {
		cfg.DefaultCount = *raw.DefaultCount
	}
	if raw.Parallelism > 0 {
		cfg.Parallelism = raw.Parallelism
	}

	return cfg, nil
}

// Overlay applies every key v has explicitly set on top of cfg. Flags bound
// to v and LOGDESK_* environment variables both count as set.
func Overlay(cfg Config, v *viper.Viper) Config {
	if v == nil {
		return cfg
	}
	if v.IsSet(KeyLogDir) {
		if dir := strings.TrimSpace(v.GetString(KeyLogDir)); dir != "" {
			cfg.LogDir = mustExpand(dir)
		}
	}
	if v.IsSet(KeyAPIBind) {
		if bind := strings.TrimSpace(v.GetString(KeyAPIBind)); bind != "" {
			cfg.APIBind = bind
		}
	}
	if v.IsSet(KeyExtension) {
		if ext := strings.TrimSpace(v.GetString(KeyExtension)); ext != "" {
			cfg.Extension = normalizeExtension(ext)
		}
	}
	if v.IsSet(KeyDefaultCount) {
		cfg.DefaultCount = v.GetInt(KeyDefaultCount)
	}
	if v.IsSet(KeyParallelism) {
		if n := v.GetInt(KeyParallelism); n > 0 {
			cfg.Parallelism = n
		}
	}
	return cfg
}

// LogPath returns the file backing the named source.
func (c Config) LogPath(source string) string {
	dir := c.LogDir
	if strings.TrimSpace(dir) == "" {
		dir = mustExpand(defaultLogDir)
	}
	ext := c.Extension
	if ext == "" {
		ext = defaultExtension
	}
	return filepath.Join(dir, source+ext)
}

func normalizeExtension(ext string) string {
	if !strings.HasPrefix(ext, ".") {
		return "." + ext
	}
	return ext
}

func trimAll(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
