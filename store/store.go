// Package store provides the session store: an in-process cache over a
// pluggable durable backing medium.
package store

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hireloop/jobagent/domain"
)

// DefaultIdleTimeout is how long a session may sit untouched before it is
// considered expired.
const DefaultIdleTimeout = 24 * time.Hour

// Medium is the durable storage behind the Store. Implementations must be
// safe for concurrent use; Load returns (nil, nil) when the session does
// not exist.
type Medium interface {
	Save(ctx context.Context, session *domain.Session) error
	Load(ctx context.Context, sessionID string) (*domain.Session, error)
	Delete(ctx context.Context, sessionID string) (bool, error)
	List(ctx context.Context) ([]*domain.Session, error)
	Close() error
}

// Store holds hot sessions in memory and writes through to a Medium.
// A single coarse mutex guards the cache; the workload is low-volume chat.
type Store struct {
	medium Medium
	idle   time.Duration

	mu    sync.Mutex
	cache map[string]*domain.Session
}

// New creates a store over the given medium. idleTimeout <= 0 selects the
// default.
func New(medium Medium, idleTimeout time.Duration) *Store {
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}
	return &Store{
		medium: medium,
		idle:   idleTimeout,
		cache:  make(map[string]*domain.Session),
	}
}

// Create allocates and persists a fresh session. A caller-supplied
// sessionID must be unique; an empty sessionID gets a generated one.
func (st *Store) Create(ctx context.Context, ownerID, ownerName, sessionID string) (*domain.Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if sessionID == "" {
		sessionID = "sess_" + uuid.New().String()[:8]
	} else if err := st.checkDuplicateLocked(ctx, sessionID); err != nil {
		return nil, err
	}

	now := time.Now().UTC().Truncate(time.Second)
	session := &domain.Session{
		SessionID:     sessionID,
		OwnerID:       ownerID,
		OwnerName:     ownerName,
		CreatedAt:     now,
		LastUpdatedAt: now,
		History:       []string{},
		Record:        domain.Record{},
		CurrentStep:   domain.StepCollectingBasics,
		IsComplete:    false,
	}

	if err := st.medium.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	st.cache[sessionID] = session
	return session.Clone(), nil
}

// checkDuplicateLocked rejects ids that are live in the cache or the
// backing medium. An expired stored session is lazily deleted and its id
// becomes reusable.
func (st *Store) checkDuplicateLocked(ctx context.Context, sessionID string) error {
	if _, ok := st.cache[sessionID]; ok {
		return domain.ErrDuplicateSession
	}
	stored, err := st.medium.Load(ctx, sessionID)
	if err != nil {
		log.Printf("WARN: duplicate check load failed for %s: %v", sessionID, err)
		return nil
	}
	if stored == nil {
		return nil
	}
	if !stored.ExpiredAt(time.Now().UTC(), st.idle) {
		return domain.ErrDuplicateSession
	}
	st.deleteLocked(ctx, sessionID)
	return nil
}

// Get returns the session, cache first. Expired sessions are lazily
// deleted and reported as not found. A successful read refreshes
// LastUpdatedAt and writes through.
func (st *Store) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	session, ok := st.cache[sessionID]
	if !ok {
		stored, err := st.medium.Load(ctx, sessionID)
		if err != nil {
			log.Printf("WARN: failed to load session %s: %v", sessionID, err)
			return nil, domain.ErrSessionNotFound
		}
		if stored == nil {
			return nil, domain.ErrSessionNotFound
		}
		session = stored
		st.cache[sessionID] = session
	}

	if session.ExpiredAt(time.Now().UTC(), st.idle) {
		st.deleteLocked(ctx, sessionID)
		return nil, domain.ErrSessionNotFound
	}

	session.LastUpdatedAt = time.Now().UTC().Truncate(time.Second)
	if err := st.medium.Save(ctx, session); err != nil {
		// The read itself succeeded; a write-through failure is absorbed.
		log.Printf("WARN: failed to write through session %s: %v", sessionID, err)
	}
	return session.Clone(), nil
}

// Update refreshes LastUpdatedAt and persists the session. The cache is
// always updated; a medium failure is reported so the caller may retry the
// turn. Last writer wins for concurrent updates to the same id.
func (st *Store) Update(ctx context.Context, session *domain.Session) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	updated := session.Clone()
	updated.LastUpdatedAt = time.Now().UTC().Truncate(time.Second)
	st.cache[updated.SessionID] = updated

	if err := st.medium.Save(ctx, updated); err != nil {
		return fmt.Errorf("failed to persist session %s: %w", updated.SessionID, err)
	}
	return nil
}

// Delete removes the session from cache and medium, reporting whether
// anything was removed.
func (st *Store) Delete(ctx context.Context, sessionID string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.deleteLocked(ctx, sessionID)
}

func (st *Store) deleteLocked(ctx context.Context, sessionID string) bool {
	_, cached := st.cache[sessionID]
	delete(st.cache, sessionID)

	removed, err := st.medium.Delete(ctx, sessionID)
	if err != nil {
		log.Printf("WARN: failed to delete session %s from medium: %v", sessionID, err)
		return cached
	}
	return cached || removed
}

// ListByOwner returns the owner's live sessions, most recently updated
// first. Expired sessions are excluded (but not deleted; the sweep does
// that).
func (st *Store) ListByOwner(ctx context.Context, ownerID string, limit int) []*domain.Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := time.Now().UTC()
	var out []*domain.Session
	for _, session := range st.knownSessionsLocked(ctx) {
		if session.OwnerID != ownerID || session.ExpiredAt(now, st.idle) {
			continue
		}
		out = append(out, session.Clone())
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].LastUpdatedAt.After(out[j].LastUpdatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// SweepExpired deletes every known expired session and returns how many
// were removed.
func (st *Store) SweepExpired(ctx context.Context) int {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := time.Now().UTC()
	count := 0
	for id, session := range st.knownSessionsLocked(ctx) {
		if session.ExpiredAt(now, st.idle) {
			if st.deleteLocked(ctx, id) {
				count++
			}
		}
	}
	return count
}

// knownSessionsLocked merges the medium's sessions with the cache; a
// cached entry is authoritative over its stored counterpart.
func (st *Store) knownSessionsLocked(ctx context.Context) map[string]*domain.Session {
	known := make(map[string]*domain.Session, len(st.cache))

	stored, err := st.medium.List(ctx)
	if err != nil {
		log.Printf("WARN: failed to list sessions from medium: %v", err)
	}
	for _, session := range stored {
		known[session.SessionID] = session
	}
	for id, session := range st.cache {
		known[id] = session
	}
	return known
}

// Close closes the backing medium.
func (st *Store) Close() error {
	return st.medium.Close()
}
