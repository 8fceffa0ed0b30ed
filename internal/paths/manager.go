package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dcott7/stormatter/internal/source"
)

var (
	// ErrNoEntry indicates the named entry does not exist in paths.dat.
	ErrNoEntry = errors.New("no such entry in paths.dat")
	// ErrNotDirectory indicates a destination that is not a directory.
	ErrNotDirectory = errors.New("destination is not a directory")
)

// Manager ties a paths.dat file to its history store and implements the
// read/rewrite/revert operations.
type Manager struct {
	PathsFile string
	History   *History
}

// NewManager creates a manager for pathsFile backed by history.
func NewManager(pathsFile string, history *History) *Manager {
	return &Manager{PathsFile: pathsFile, History: history}
}

// GetPaths parses paths.dat. With trackHistory set, the parsed values are
// recorded and the history saved.
func (m *Manager) GetPaths(trackHistory bool) (map[string]string, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(m.PathsFile)
	if err != nil {
		return nil, err
	}
	parsed, err := NewParser(fs.Get(id)).Parse()
	if err != nil {
		return nil, err
	}

	if trackHistory {
		if err := m.History.UpdateFromPaths(m.PathsFile, parsed, 0); err != nil {
			return nil, fmt.Errorf("paths: saving history: %w", err)
		}
	}
	return parsed, nil
}

// MakeLocal copies the file behind the named entry into destDir, rewrites
// paths.dat to point at the copy, and records the change.
func (m *Manager) MakeLocal(name, destDir string) error {
	destDir, err := filepath.Abs(destDir)
	if err != nil {
		return err
	}
	info, err := os.Stat(destDir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, destDir)
	}

	current, err := m.GetPaths(false)
	if err != nil {
		return err
	}
	src, ok := current[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoEntry, name)
	}

	data, err := os.ReadFile(src) // #nosec G304 -- path comes from the user's paths.dat
	if err != nil {
		return err
	}
	dest := filepath.Join(destDir, filepath.Base(src))
	if err := os.WriteFile(dest, data, 0o644); err != nil { // #nosec G306
		return err
	}

	current[name] = dest
	if err := m.writePaths(current); err != nil {
		return err
	}
	return m.History.UpdateFromPaths(m.PathsFile, current, 0)
}

// RevertLastChange restores every entry with at least two history records to
// its previous value. Entries without prior state are untouched; when
// nothing can be reverted the call is a no-op.
func (m *Manager) RevertLastChange() error {
	names := m.History.Names(m.PathsFile)
	if len(names) == 0 {
		return nil
	}

	current, err := m.GetPaths(false)
	if err != nil {
		return err
	}

	reverted := false
	for _, name := range names {
		prev, ok := m.History.PreviousPath(m.PathsFile, name)
		if !ok {
			continue
		}
		current[name] = prev
		reverted = true
	}
	if !reverted {
		return nil
	}

	if err := m.writePaths(current); err != nil {
		return err
	}
	return m.History.UpdateFromPaths(m.PathsFile, current, 0)
}

// RevertLastChangeFor restores a single entry to its previous value; a
// no-op when the entry has no prior state.
func (m *Manager) RevertLastChangeFor(name string) error {
	prev, ok := m.History.PreviousPath(m.PathsFile, name)
	if !ok {
		return nil
	}

	current, err := m.GetPaths(false)
	if err != nil {
		return err
	}
	current[name] = prev

	if err := m.writePaths(current); err != nil {
		return err
	}
	return m.History.UpdateFromPaths(m.PathsFile, current, 0)
}

func (m *Manager) writePaths(paths map[string]string) error {
	return os.WriteFile(m.PathsFile, Marshal(paths), 0o644) // #nosec G306
}
