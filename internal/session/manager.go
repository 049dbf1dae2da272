package session

import (
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/aclements/quickfilter/config"
	qerrors "github.com/aclements/quickfilter/internal/errors"
	"github.com/aclements/quickfilter/internal/logger"
	"github.com/aclements/quickfilter/internal/persistence"
	"github.com/aclements/quickfilter/model"
	"github.com/aclements/quickfilter/services"
	"github.com/aclements/quickfilter/store"
)

const (
	dataDirPerm    = 0750
	definitionFile = "definition.gob"
	stateFile      = "state.json"
)

// Manager owns the live filtering sessions. With a data directory it
// snapshots session definitions to disk and reloads them on startup; filter
// state always persists through each session's own state store.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	dataDir  string
	log      *log.Logger
}

var _ services.SessionManager = (*Manager)(nil)

// persistedFacet is the on-disk form of a facet configuration. Projection
// functions cannot be snapshotted, so only attribute-based facets persist.
type persistedFacet struct {
	Name             string
	Type             config.FacetType
	Attribute        string
	InitialSelection []string
	InitialQuery     string
}

// sessionDefinition is the gob snapshot of everything needed to rebuild a
// session after a restart.
type sessionDefinition struct {
	ID         string
	Collection *store.Collection
	Facets     []persistedFacet
}

// NewManager creates a session manager. An empty dataDir disables disk
// snapshots; otherwise previously snapshotted sessions are reloaded.
func NewManager(dataDir string) *Manager {
	m := &Manager{
		sessions: make(map[string]*Session),
		dataDir:  dataDir,
		log:      logger.New("sessions"),
	}
	if dataDir != "" {
		if err := os.MkdirAll(dataDir, dataDirPerm); err != nil {
			m.log.Warn("could not create data directory; sessions will not survive restarts",
				"dir", dataDir, "err", err)
			m.dataDir = ""
			return m
		}
		m.loadSessionsFromDisk()
	}
	return m
}

func (m *Manager) loadSessionsFromDisk() {
	items, err := os.ReadDir(m.dataDir)
	if err != nil {
		m.log.Warn("failed to read data directory, no sessions loaded", "dir", m.dataDir, "err", err)
		return
	}

	for _, item := range items {
		if !item.IsDir() {
			continue
		}
		id := item.Name()

		var def sessionDefinition
		defPath := filepath.Join(m.dataDir, id, definitionFile)
		if err := persistence.LoadGob(defPath, &def); err != nil {
			m.log.Warn("failed to load session definition, skipping", "session", id, "err", err)
			continue
		}
		if def.ID != id {
			m.log.Warn("session definition ID does not match directory, skipping",
				"session", id, "definition_id", def.ID)
			continue
		}

		configs := make([]config.FacetConfig, len(def.Facets))
		for i, pf := range def.Facets {
			configs[i] = config.FacetConfig{
				Name:             pf.Name,
				Type:             pf.Type,
				Attribute:        pf.Attribute,
				InitialSelection: pf.InitialSelection,
				InitialQuery:     pf.InitialQuery,
			}
		}

		sess, err := New(def.Collection, configs, m.stateStoreFor(id))
		if err != nil {
			m.log.Warn("failed to rebuild session, skipping", "session", id, "err", err)
			continue
		}
		m.sessions[id] = sess
		m.log.Info("loaded session", "session", id, "objects", def.Collection.Len(), "facets", len(configs))
	}
}

func (m *Manager) stateStoreFor(id string) services.StateStore {
	if m.dataDir == "" {
		return &persistence.MemoryStore{}
	}
	return persistence.NewFileStore(filepath.Join(m.dataDir, id, stateFile))
}

// CreateSession builds a new session over the given objects and facets and
// returns its ID. Attribute-based sessions are snapshotted to disk so they
// survive restarts.
func (m *Manager) CreateSession(objects []model.Object, facets []config.FacetConfig) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New().String()
	collection := store.NewCollection(objects)

	sess, err := New(collection, facets, m.stateStoreFor(id))
	if err != nil {
		return "", err
	}

	if m.dataDir != "" {
		if def, ok := snapshotDefinition(id, collection, facets); ok {
			defPath := filepath.Join(m.dataDir, id, definitionFile)
			if err := persistence.SaveGob(defPath, def); err != nil {
				m.log.Warn("failed to snapshot session definition; it will not survive restarts",
					"session", id, "err", err)
			}
		} else {
			m.log.Debug("session uses projection functions, skipping disk snapshot", "session", id)
		}
	}

	m.sessions[id] = sess
	m.log.Info("created session", "session", id, "objects", len(objects), "facets", len(facets))
	return id, nil
}

// snapshotDefinition converts a session's inputs into their on-disk form.
// Reports false when any facet uses a projection function.
func snapshotDefinition(id string, collection *store.Collection, facets []config.FacetConfig) (*sessionDefinition, bool) {
	persisted := make([]persistedFacet, len(facets))
	for i, fc := range facets {
		if fc.Project != nil {
			return nil, false
		}
		persisted[i] = persistedFacet{
			Name:             fc.Name,
			Type:             fc.Type,
			Attribute:        fc.Attribute,
			InitialSelection: fc.InitialSelection,
			InitialQuery:     fc.InitialQuery,
		}
	}
	return &sessionDefinition{ID: id, Collection: collection, Facets: persisted}, true
}

// GetSession retrieves a session by ID.
func (m *Manager) GetSession(id string) (services.SessionAccessor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sess, ok := m.sessions[id]
	if !ok {
		return nil, qerrors.NewSessionNotFoundError(id)
	}
	return sess, nil
}

// DeleteSession removes a session from memory and disk. Deleting an unknown
// session is an error.
func (m *Manager) DeleteSession(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return qerrors.NewSessionNotFoundError(id)
	}
	delete(m.sessions, id)

	if m.dataDir != "" {
		if err := os.RemoveAll(filepath.Join(m.dataDir, id)); err != nil {
			m.log.Warn("failed to remove session directory", "session", id, "err", err)
		}
	}
	m.log.Info("deleted session", "session", id)
	return nil
}

// ListSessions returns all session IDs in lexicographic order.
func (m *Manager) ListSessions() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
