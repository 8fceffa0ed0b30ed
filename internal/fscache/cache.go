// Package fscache persists per-file change-detection state (mtime, size,
// content hash) so repeated runs can skip files that have not changed.
package fscache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// Schema version, bumped whenever the payload layout changes so stale cache
// files invalidate themselves.
const cacheSchemaVersion uint16 = 1

// Entry records the last observed state of one file.
type Entry struct {
	MTimeNS int64
	Size    int64
	Hash    string // SHA-256, hex
}

type payload struct {
	Schema  uint16
	Entries map[string]Entry
}

// Cache maps absolute file paths to their last recorded state. Load/Save use
// a msgpack file; a missing or unreadable cache degrades to empty rather
// than erroring.
type Cache struct {
	path    string
	entries map[string]Entry
}

// DefaultPath returns the cache location for the app under XDG_CACHE_HOME,
// falling back to ~/.cache.
func DefaultPath(app string) (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, app, "files.mp"), nil
}

// Load reads the cache from path. Missing, corrupt, or schema-mismatched
// files yield an empty cache bound to the same path.
func Load(path string) *Cache {
	c := &Cache{path: path, entries: make(map[string]Entry)}

	f, err := os.Open(path) // #nosec G304 -- cache path is app-controlled
	if err != nil {
		return c
	}
	defer f.Close() //nolint:errcheck // read-only handle

	var p payload
	if err := msgpack.NewDecoder(f).Decode(&p); err != nil {
		return c
	}
	if p.Schema != cacheSchemaVersion || p.Entries == nil {
		return c
	}
	c.entries = p.Entries
	return c
}

// Path returns the on-disk location the cache was loaded from.
func (c *Cache) Path() string {
	return c.path
}

// Len returns the number of recorded entries.
func (c *Cache) Len() int {
	return len(c.entries)
}

// FileHash computes the SHA-256 hash of the file contents, hex encoded.
func FileHash(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is provided by the caller
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Stat returns the current Entry for a file on disk.
func Stat(path string) (Entry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Entry{}, err
	}
	hash, err := FileHash(path)
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		MTimeNS: info.ModTime().UnixNano(),
		Size:    info.Size(),
		Hash:    hash,
	}, nil
}

// Changed reports whether the file differs from its recorded state. Unknown
// files count as changed. Size and mtime are checked before rehashing.
func (c *Cache) Changed(path string) (bool, error) {
	key, err := cacheKey(path)
	if err != nil {
		return true, err
	}
	old, ok := c.entries[key]
	if !ok {
		return true, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return true, err
	}
	if info.Size() != old.Size {
		return true, nil
	}
	if info.ModTime().UnixNano() != old.MTimeNS {
		// mtime moved; confirm with the content hash
		hash, err := FileHash(path)
		if err != nil {
			return true, err
		}
		if hash != old.Hash {
			return true, nil
		}
	}
	return false, nil
}

// Update records the current state of each path. Paths that cannot be
// statted are skipped.
func (c *Cache) Update(paths ...string) {
	for _, p := range paths {
		key, err := cacheKey(p)
		if err != nil {
			continue
		}
		entry, err := Stat(p)
		if err != nil {
			continue
		}
		c.entries[key] = entry
	}
}

// Forget removes the recorded state for a path.
func (c *Cache) Forget(path string) {
	if key, err := cacheKey(path); err == nil {
		delete(c.entries, key)
	}
}

// Save writes the cache atomically: encode to a temp file in the target
// directory, then rename over the destination.
func (c *Cache) Save() error {
	if c.path == "" {
		return errors.New("fscache: no cache path configured")
	}
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp) //nolint:errcheck // no-op after successful rename

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload{Schema: cacheSchemaVersion, Entries: c.entries}); err != nil {
		f.Close() //nolint:errcheck,gosec // encode error takes precedence
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, c.path)
}

func cacheKey(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(abs), nil
}
