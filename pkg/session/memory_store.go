package session

import (
	"log/slog"
	"time"

	"github.com/aiquest/classifier/pkg/concurrent"
)

// InMemoryStore keeps sessions in a mutex-guarded map (concurrent.Map,
// adapted from the teacher's pkg/concurrent.Map) and evicts entries whose
// last-access timestamp exceeds ttl via a dedicated janitor goroutine,
// following the teacher's InMemorySessionStore shape in
// pkg/session/store.go.
type InMemoryStore struct {
	sessions   *concurrent.Map[string, *Session]
	lastAccess *concurrent.Map[string, time.Time]

	ttl             time.Duration
	cleanupInterval time.Duration
	logger          *slog.Logger

	stop chan struct{}
}

// NewInMemoryStore constructs a store and starts its janitor goroutine.
// Call Close to stop the janitor cleanly on shutdown.
func NewInMemoryStore(ttl, cleanupInterval time.Duration, logger *slog.Logger) *InMemoryStore {
	if logger == nil {
		logger = slog.Default()
	}
	s := &InMemoryStore{
		sessions:        concurrent.NewMap[string, *Session](),
		lastAccess:      concurrent.NewMap[string, time.Time](),
		ttl:             ttl,
		cleanupInterval: cleanupInterval,
		logger:          logger,
		stop:            make(chan struct{}),
	}
	go s.janitor()
	return s
}

func (s *InMemoryStore) Create(firstModuleID *string, lang string) (*Session, error) {
	sess := New(firstModuleID, lang)
	s.sessions.Store(sess.ID, sess)
	s.lastAccess.Store(sess.ID, time.Now())
	return sess, nil
}

func (s *InMemoryStore) Get(id string) (*Session, error) {
	sess, ok := s.sessions.Load(id)
	if !ok {
		return nil, ErrNotFound
	}
	s.lastAccess.Store(id, time.Now())
	return sess.Clone(), nil
}

func (s *InMemoryStore) Save(sess *Session) error {
	s.sessions.Store(sess.ID, sess.Clone())
	s.lastAccess.Store(sess.ID, time.Now())
	return nil
}

// Close stops the janitor goroutine. Safe to call once.
func (s *InMemoryStore) Close() error {
	close(s.stop)
	return nil
}

func (s *InMemoryStore) janitor() {
	if s.cleanupInterval <= 0 {
		return
	}
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *InMemoryStore) sweep() {
	if s.ttl <= 0 {
		return
	}
	now := time.Now()

	var expired []string
	s.lastAccess.Range(func(id string, last time.Time) bool {
		if now.Sub(last) > s.ttl {
			expired = append(expired, id)
		}
		return true
	})

	for _, id := range expired {
		s.sessions.Delete(id)
		s.lastAccess.Delete(id)
	}
	if len(expired) > 0 {
		s.logger.Debug("session janitor evicted expired sessions", "count", len(expired))
	}
}
