package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Pageblan/Carepulse/internal/cart"
	"github.com/Pageblan/Carepulse/internal/checkout"
)

const (
	// DefaultTTL is how long an idle session keeps its cart.
	DefaultTTL = 2 * time.Hour

	// CleanupInterval is how often the background sweep runs
	CleanupInterval = 5 * time.Minute
)

// Session holds one browser session's cart and checkout controller.
// Both die with the session; nothing is persisted across reloads.
type Session struct {
	ID       string
	Cart     *cart.Store
	Checkout *checkout.Controller

	lastSeen time.Time
}

// Factory builds the per-session state when a new session starts.
type Factory func(id string) *Session

// Manager keeps live sessions in memory with TTL-based eviction.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	factory  Factory

	stopCleanup chan struct{}
	wg          sync.WaitGroup
}

func NewManager(ttl time.Duration, factory Factory) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	m := &Manager{
		sessions:    make(map[string]*Session),
		ttl:         ttl,
		factory:     factory,
		stopCleanup: make(chan struct{}),
	}

	m.wg.Add(1)
	go m.cleanupLoop()

	return m
}

func (m *Manager) cleanupLoop() {
	defer m.wg.Done()

	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.expireSessions()
		case <-m.stopCleanup:
			return
		}
	}
}

func (m *Manager) expireSessions() {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := time.Now().Add(-m.ttl)
	for id, s := range m.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
		}
	}
}

// Get returns a live session and refreshes its idle timer.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	s.lastSeen = time.Now()
	return s, true
}

// Create starts a fresh session with a new id.
func (m *Manager) Create() *Session {
	s := m.factory(uuid.NewString())
	s.lastSeen = time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return s
}

// GetOrCreate resumes the session for id, or starts a new one when the
// id is unknown (expired or never seen).
func (m *Manager) GetOrCreate(id string) *Session {
	if id != "" {
		if s, ok := m.Get(id); ok {
			return s
		}
	}
	return m.Create()
}

// Close stops the cleanup loop.
func (m *Manager) Close() {
	close(m.stopCleanup)
	m.wg.Wait()
}
