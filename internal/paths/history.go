package paths

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Record is one append-only history entry for a named path.
type Record struct {
	// Timestamp is seconds since the Unix epoch.
	Timestamp float64 `json:"timestamp"`
	Path      string  `json:"path"`
}

// History persists, per paths.dat file and per entry name, the list of every
// path value the entry has held. The backing store is a JSON file.
type History struct {
	path string
	// paths.dat absolute path -> entry name -> records, oldest first
	data map[string]map[string][]Record
}

// DefaultHistoryPath returns ~/.stormatter_history.json.
func DefaultHistoryPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".stormatter_history.json"), nil
}

// LoadHistory reads the history file at path. A missing or corrupt file
// loads as empty history bound to the same path.
func LoadHistory(path string) *History {
	h := &History{path: path, data: make(map[string]map[string][]Record)}

	raw, err := os.ReadFile(path) // #nosec G304 -- history path is app-controlled
	if err != nil {
		return h
	}
	var data map[string]map[string][]Record
	if err := json.Unmarshal(raw, &data); err != nil || data == nil {
		return h
	}
	h.data = data
	return h
}

// Save writes the history as indented JSON. Map keys marshal in sorted
// order, keeping the file diffable.
func (h *History) Save() error {
	raw, err := json.MarshalIndent(h.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(h.path, raw, 0o644) // #nosec G306 -- history is not sensitive
}

// fileHistory returns (creating if needed) the per-name record map for a
// paths.dat file, keyed by its absolute path.
func (h *History) fileHistory(pathsFile string) map[string][]Record {
	key := historyKey(pathsFile)
	if h.data[key] == nil {
		h.data[key] = make(map[string][]Record)
	}
	return h.data[key]
}

// Record appends a history entry for name unless it duplicates the latest
// recorded path. A zero ts means "now".
func (h *History) Record(pathsFile, name, value string, ts float64) {
	fileHist := h.fileHistory(pathsFile)
	entries := fileHist[name]
	if len(entries) > 0 && entries[len(entries)-1].Path == value {
		return
	}
	if ts == 0 {
		ts = float64(time.Now().UnixNano()) / float64(time.Second)
	}
	fileHist[name] = append(entries, Record{Timestamp: ts, Path: value})
}

// UpdateFromPaths records the current value of every entry and saves.
func (h *History) UpdateFromPaths(pathsFile string, paths map[string]string, ts float64) error {
	for name, value := range paths {
		h.Record(pathsFile, name, value, ts)
	}
	return h.Save()
}

// LastUpdate returns the most recent record for name, if any.
func (h *History) LastUpdate(pathsFile, name string) (Record, bool) {
	entries := h.fileHistory(pathsFile)[name]
	if len(entries) == 0 {
		return Record{}, false
	}
	return entries[len(entries)-1], true
}

// LastPath returns the most recent recorded path for name, if any.
func (h *History) LastPath(pathsFile, name string) (string, bool) {
	last, ok := h.LastUpdate(pathsFile, name)
	if !ok {
		return "", false
	}
	return last.Path, true
}

// PreviousPath returns the next-to-last recorded path for name — the value
// a one-step revert restores.
func (h *History) PreviousPath(pathsFile, name string) (string, bool) {
	entries := h.fileHistory(pathsFile)[name]
	if len(entries) < 2 {
		return "", false
	}
	return entries[len(entries)-2].Path, true
}

// LatestSnapshot returns the most recent recorded path for every known
// entry of a paths.dat file.
func (h *History) LatestSnapshot(pathsFile string) map[string]string {
	snapshot := make(map[string]string)
	for name, entries := range h.fileHistory(pathsFile) {
		if len(entries) == 0 {
			continue
		}
		snapshot[name] = entries[len(entries)-1].Path
	}
	return snapshot
}

// Names returns the entry names with recorded history for a paths.dat file.
func (h *History) Names(pathsFile string) []string {
	fileHist := h.fileHistory(pathsFile)
	names := make([]string, 0, len(fileHist))
	for name := range fileHist {
		names = append(names, name)
	}
	return names
}

func historyKey(pathsFile string) string {
	abs, err := filepath.Abs(pathsFile)
	if err != nil {
		return filepath.ToSlash(pathsFile)
	}
	return filepath.ToSlash(abs)
}
