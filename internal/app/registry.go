package app

import (
	"sync"

	"github.com/dkeye/Signal/internal/core"
	"github.com/dkeye/Signal/internal/domain"
	"github.com/rs/zerolog/log"
)

// Registry owns the transport handle of every live connection.
// It knows nothing about rooms.
type Registry struct {
	mu    sync.RWMutex
	conns map[domain.ConnID]core.SignalConnection
}

func NewRegistry() *Registry {
	return &Registry{
		conns: make(map[domain.ConnID]core.SignalConnection),
	}
}

// Register mints a fresh id for conn.
func (r *Registry) Register(conn core.SignalConnection) domain.ConnID {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := domain.NewConnID()
	for {
		if _, taken := r.conns[id]; !taken {
			break
		}
		id = domain.NewConnID()
	}
	r.conns[id] = conn
	log.Info().Str("module", "app.registry").Str("sid", string(id)).Int("total", len(r.conns)).Msg("registered connection")
	return id
}

// Lookup returns the transport only while it is registered and still open.
func (r *Registry) Lookup(id domain.ConnID) (core.SignalConnection, bool) {
	r.mu.RLock()
	conn, ok := r.conns[id]
	r.mu.RUnlock()
	if !ok || conn.IsClosed() {
		return nil, false
	}
	return conn, true
}

// Has reports whether id is registered, whatever the transport state.
func (r *Registry) Has(id domain.ConnID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.conns[id]
	return ok
}

func (r *Registry) Unregister(id domain.ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.conns[id]; !ok {
		return
	}
	delete(r.conns, id)
	log.Info().Str("module", "app.registry").Str("sid", string(id)).Int("total", len(r.conns)).Msg("unregistered connection")
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
