// Package persistence implements the storage collaborators of the filtering
// engine: the serialized filter-state blob format, string state stores, and
// gob snapshots of session definitions.
package persistence

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/aclements/quickfilter/internal/logger"
)

var stateLog = logger.New("state")

// EncodeState serializes the facet-name-keyed filter state mapping into the
// opaque blob handed to a StateStore.
func EncodeState(states map[string]json.RawMessage) string {
	raw, err := json.Marshal(states)
	if err != nil {
		return "{}"
	}
	return string(raw)
}

// DecodeState parses a previously saved blob. An unparseable blob decodes to
// an empty mapping: restore degrades to per-facet defaults, it never fails.
// Individual entries keep their raw form; each filter validates its own.
func DecodeState(blob string) map[string]json.RawMessage {
	var states map[string]json.RawMessage
	if err := json.Unmarshal([]byte(blob), &states); err != nil {
		stateLog.Warn("discarding unparseable saved state", "err", err)
		return map[string]json.RawMessage{}
	}
	if states == nil {
		return map[string]json.RawMessage{}
	}
	return states
}

// MemoryStore is an in-process StateStore, useful for embedding the engine
// directly and for tests.
type MemoryStore struct {
	mu     sync.Mutex
	blob   string
	loaded bool
}

// Load implements services.StateStore.
func (m *MemoryStore) Load() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.blob, m.loaded
}

// Save implements services.StateStore.
func (m *MemoryStore) Save(blob string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blob = blob
	m.loaded = true
}

// FileStore is a StateStore backed by a single file, the server-side
// equivalent of the hidden form field the original collaborators used.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore at the given path. The file is created
// on first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load implements services.StateStore. A missing or unreadable file reports
// no saved state.
func (f *FileStore) Load() (string, bool) {
	raw, err := os.ReadFile(f.path) // #nosec G304 -- path is controlled by the application, not user input
	if err != nil {
		if !os.IsNotExist(err) {
			stateLog.Warn("failed to read state file", "path", f.path, "err", err)
		}
		return "", false
	}
	return string(raw), true
}

// Save implements services.StateStore. Failures are logged, not propagated:
// a refresh never fails on persistence.
func (f *FileStore) Save(blob string) {
	if err := os.MkdirAll(filepath.Dir(f.path), 0750); err != nil {
		stateLog.Warn("failed to create state directory", "path", f.path, "err", err)
		return
	}
	if err := os.WriteFile(f.path, []byte(blob), 0600); err != nil {
		stateLog.Warn("failed to write state file", "path", f.path, "err", err)
	}
}
