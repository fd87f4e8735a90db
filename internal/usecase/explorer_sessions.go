package usecase

import (
	"time"

	icache "QuantDesk/internal/service/cache"
	xhttp "QuantDesk/pkg/http"
	applogger "QuantDesk/pkg/logger"

	"github.com/google/uuid"
)

// ExplorerSessions owns the live explorer sessions. Sessions are
// ephemeral: they live in a TTL cache, slide on access, and vanish with
// the process.
type ExplorerSessions struct {
	catalog  *Catalog
	store    *icache.TTLCache
	ttl      time.Duration
	pageSize int
	logger   *applogger.Logger
}

// NewExplorerSessions creates the session manager.
func NewExplorerSessions(catalog *Catalog, ttl time.Duration, pageSize int, logger *applogger.Logger) *ExplorerSessions {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &ExplorerSessions{
		catalog:  catalog,
		store:    icache.NewTTLCache(),
		ttl:      ttl,
		pageSize: pageSize,
		logger:   logger,
	}
}

// Create starts a new session and returns it.
func (m *ExplorerSessions) Create() *Explorer {
	id := uuid.NewString()
	e := NewExplorer(id, m.catalog, m.pageSize, m.logger, func(codes []string) {
		if m.logger != nil {
			m.logger.Debug("selection changed",
				applogger.String("session", id),
				applogger.Strings("codes", codes))
		}
	})
	m.store.Set(id, e, m.ttl)
	return e
}

// Get returns the session by ID, sliding its expiry.
func (m *ExplorerSessions) Get(id string) (*Explorer, error) {
	v, ok := m.store.Get(id)
	if !ok {
		return nil, xhttp.NotFoundErrorf("session %s not found", id)
	}
	e, ok := v.(*Explorer)
	if !ok {
		return nil, xhttp.InternalErrorf("session %s has wrong type", id)
	}
	m.store.Set(id, e, m.ttl)
	return e, nil
}
