package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, contents string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "stormatter.toml"), []byte(contents), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
}

func TestLoadProjectConfigDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := loadProjectConfig(dir)
	if err != nil {
		t.Fatalf("loadProjectConfig: %v", err)
	}
	if cfg.TabSize != 4 {
		t.Errorf("TabSize = %d, want 4", cfg.TabSize)
	}
	if !cfg.UseTabs {
		t.Error("UseTabs = false, want true")
	}
	if cfg.SectionBlocks {
		t.Error("SectionBlocks = true, want false")
	}
}

func TestLoadProjectConfigPartialOverride(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "[format]\ntab_size = 8\n")

	cfg, err := loadProjectConfig(dir)
	if err != nil {
		t.Fatalf("loadProjectConfig: %v", err)
	}
	if cfg.TabSize != 8 {
		t.Errorf("TabSize = %d, want 8", cfg.TabSize)
	}
	if !cfg.UseTabs {
		t.Error("UseTabs should keep its default when the file leaves it unset")
	}
}

func TestLoadProjectConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[format]\nuse_tabs = false\nsection_blocks = true\n")

	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	cfg, err := loadProjectConfig(nested)
	if err != nil {
		t.Fatalf("loadProjectConfig: %v", err)
	}
	if cfg.UseTabs {
		t.Error("UseTabs = true, want false from parent config")
	}
	if !cfg.SectionBlocks {
		t.Error("SectionBlocks = false, want true from parent config")
	}
	if cfg.TabSize != 4 {
		t.Errorf("TabSize = %d, want default 4", cfg.TabSize)
	}
}

func TestLoadProjectConfigBadTOML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "[format\ntab_size = oops")

	if _, err := loadProjectConfig(dir); err == nil {
		t.Fatal("expected parse error for malformed TOML")
	}
}
