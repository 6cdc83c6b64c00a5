// Package config handles loading and parsing logdesk configuration files.
//
// # Overview
//
// This package reads logdesk's TOML configuration to discover the log
// directory, which files count as sources, and where the HTTP API listens.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/logdesk/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// Overlay then applies flag and LOGDESK_* environment overrides held by a
// viper instance. Precedence is flag, then env, then file, then default.
//
// # Default Values
//
//   - Config file: ~/.config/logdesk/config.toml
//   - API endpoint: 127.0.0.1:8181
//   - Log directory: ~/.local/share/logdesk/logs
//   - Extension: .log
//   - Default count: 200 (negative means unbounded)
//   - Parallelism: 4 files read at once
//
// # TOML Format
//
//	log_dir = "~/.local/share/logdesk/logs"
//	api_bind = "127.0.0.1:8181"
//	extension = ".log"
//	include = ["*.log"]
//	known_sources = ["main"]
//	default_count = 200
//	parallelism = 4
//
// Every field is optional. Tilde expansion is performed on log_dir.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//
// # Usage Example
//
//	cfg, err := config.Load("")
//	if err != nil {
//		return err
//	}
//	cfg = config.Overlay(cfg, v)
//	path := cfg.LogPath("main")
package config
