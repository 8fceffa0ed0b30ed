package fscache

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingIsEmpty(t *testing.T) {
	c := Load(filepath.Join(t.TempDir(), "nope.mp"))
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d entries", c.Len())
	}
}

func TestLoadCorruptIsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "files.mp", "not msgpack at all")
	c := Load(path)
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d entries", c.Len())
	}
}

func TestUnknownFileIsChanged(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, dir, "a.storm", "x")
	c := Load(filepath.Join(dir, "files.mp"))

	changed, err := c.Changed(target)
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Error("unknown file must count as changed")
	}
}

func TestUpdateThenUnchanged(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, dir, "a.storm", "int x = 1;")
	c := Load(filepath.Join(dir, "files.mp"))

	c.Update(target)
	changed, err := c.Changed(target)
	if err != nil {
		t.Fatal(err)
	}
	if changed {
		t.Error("freshly recorded file must be unchanged")
	}
}

func TestContentChangeDetected(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, dir, "a.storm", "int x = 1;")
	c := Load(filepath.Join(dir, "files.mp"))
	c.Update(target)

	writeFile(t, dir, "a.storm", "int y = 2;")
	changed, err := c.Changed(target)
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Error("rewritten file must count as changed")
	}
}

func TestMTimeChangeSameContentIsUnchanged(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, dir, "a.storm", "int x = 1;")
	c := Load(filepath.Join(dir, "files.mp"))
	c.Update(target)

	// Touch mtime without touching content; the hash check must rescue it.
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(target, future, future); err != nil {
		t.Fatal(err)
	}
	changed, err := c.Changed(target)
	if err != nil {
		t.Fatal(err)
	}
	if changed {
		t.Error("same content with new mtime must be unchanged")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, dir, "a.storm", "int x = 1;")
	cachePath := filepath.Join(dir, "cache", "files.mp")

	c := Load(cachePath)
	c.Update(target)
	if err := c.Save(); err != nil {
		t.Fatal(err)
	}

	c2 := Load(cachePath)
	if c2.Len() != 1 {
		t.Fatalf("expected 1 entry after reload, got %d", c2.Len())
	}
	changed, err := c2.Changed(target)
	if err != nil {
		t.Fatal(err)
	}
	if changed {
		t.Error("reloaded cache must still mark file unchanged")
	}
}

func TestForget(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, dir, "a.storm", "x")
	c := Load(filepath.Join(dir, "files.mp"))
	c.Update(target)
	c.Forget(target)

	changed, err := c.Changed(target)
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Error("forgotten file must count as changed")
	}
}

func TestUpdateSkipsMissingFiles(t *testing.T) {
	dir := t.TempDir()
	c := Load(filepath.Join(dir, "files.mp"))
	c.Update(filepath.Join(dir, "missing.storm"))
	if c.Len() != 0 {
		t.Errorf("missing file must not be recorded, got %d entries", c.Len())
	}
}

func TestFileHashStable(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.storm", "same")
	b := writeFile(t, dir, "b.storm", "same")

	ha, err := FileHash(a)
	if err != nil {
		t.Fatal(err)
	}
	hb, err := FileHash(b)
	if err != nil {
		t.Fatal(err)
	}
	if ha != hb {
		t.Error("identical content must hash identically")
	}
	if len(ha) != 64 {
		t.Errorf("expected hex sha256, got %q", ha)
	}
}
