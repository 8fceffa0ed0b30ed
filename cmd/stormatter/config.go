package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/dcott7/stormatter/internal/format"
)

// projectConfig mirrors the optional stormatter.toml found by walking up
// from the working directory. It supplies defaults for fmt flags; explicit
// flags always win.
type projectConfig struct {
	Format formatConfig `toml:"format"`
}

type formatConfig struct {
	TabSize       int  `toml:"tab_size"`
	UseTabs       bool `toml:"use_tabs"`
	SectionBlocks bool `toml:"section_blocks"`
}

func defaultFormatConfig() formatConfig {
	return formatConfig{TabSize: format.DefaultTabDisplaySize, UseTabs: true}
}

// findProjectConfig walks up from startDir looking for stormatter.toml.
func findProjectConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "stormatter.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadProjectConfig returns the config from the nearest stormatter.toml, or
// defaults when none exists. Fields the file leaves unset keep defaults.
func loadProjectConfig(startDir string) (formatConfig, error) {
	cfg := defaultFormatConfig()

	path, ok, err := findProjectConfig(startDir)
	if err != nil || !ok {
		return cfg, err
	}

	var file projectConfig
	meta, err := toml.DecodeFile(path, &file)
	if err != nil {
		return cfg, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if meta.IsDefined("format", "tab_size") {
		cfg.TabSize = file.Format.TabSize
	}
	if meta.IsDefined("format", "use_tabs") {
		cfg.UseTabs = file.Format.UseTabs
	}
	if meta.IsDefined("format", "section_blocks") {
		cfg.SectionBlocks = file.Format.SectionBlocks
	}
	return cfg, nil
}
