package callsession

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	// sessionTTL bounds how long a session may sit without a start, an event
	// or a state poll before the janitor ends and discards it. Covers clients
	// that vanish without stopping their call or polling the redirect.
	sessionTTL   = 30 * time.Minute
	reapInterval = time.Minute
)

// Registry owns the live call sessions. Sessions are ephemeral: they exist
// in memory for the duration of one call and are removed once the caller
// has consumed the terminal redirect, or reaped after sitting idle.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	factory       TransportFactory
	deriver       FeedbackDeriver
	deriveTimeout time.Duration
	ttl           time.Duration

	stop     chan struct{}
	stopOnce sync.Once
}

func NewRegistry(factory TransportFactory, deriver FeedbackDeriver, deriveTimeout time.Duration) *Registry {
	r := &Registry{
		sessions:      make(map[string]*Session),
		factory:       factory,
		deriver:       deriver,
		deriveTimeout: deriveTimeout,
		ttl:           sessionTTL,
		stop:          make(chan struct{}),
	}
	go r.janitor()
	return r
}

func (r *Registry) Create(p Params) *Session {
	session := newSession(uuid.NewString(), p, r.factory(), r.deriver, r.deriveTimeout)
	r.mu.Lock()
	r.sessions[session.ID] = session
	r.mu.Unlock()
	return session
}

func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	return session, ok
}

func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Close stops the janitor. Safe to call more than once.
func (r *Registry) Close() {
	r.stopOnce.Do(func() { close(r.stop) })
}

func (r *Registry) janitor() {
	ticker := time.NewTicker(reapInterval)
	defer ticker.Stop()
	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			r.reapIdle(time.Now())
		}
	}
}

// reapIdle removes every session idle past the TTL and force-ends it so the
// transport call and the event-loop goroutine are released too.
func (r *Registry) reapIdle(now time.Time) {
	r.mu.Lock()
	var stale []*Session
	for id, session := range r.sessions {
		if now.Sub(session.LastActivity()) > r.ttl {
			stale = append(stale, session)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, session := range stale {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		session.End(ctx)
		cancel()
		log.Info().Str("sessionID", session.ID).Msg("Reaped idle call session")
	}
}
