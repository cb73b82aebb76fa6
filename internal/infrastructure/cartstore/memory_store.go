package cartstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pharmaweb/pharmapos-api/internal/domain/entity"
	domainRepo "github.com/pharmaweb/pharmapos-api/internal/domain/repository"
)

const (
	// SessionTTL is how long an untouched cart survives before cleanup
	SessionTTL = 8 * time.Hour

	// CleanupInterval is how often the background cleanup runs
	CleanupInterval = 15 * time.Minute
)

// session pairs a cart with its own mutex so mutations for one cashier are
// strictly serialized while other sessions proceed independently.
type session struct {
	mu   sync.Mutex
	cart entity.Cart
}

// MemoryStore implements CartStore with in-memory storage. Carts are
// ephemeral working state: they exist only between the first add and the
// finalize (or clear), so process memory is their natural home.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*session

	stopCleanup chan struct{}
	wg          sync.WaitGroup
}

// NewMemoryStore creates a new in-memory cart store
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		sessions:    make(map[uuid.UUID]*session),
		stopCleanup: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.cleanupLoop()

	return s
}

var _ domainRepo.CartStore = (*MemoryStore)(nil)

// getSession returns the session entry, creating it on first use
func (s *MemoryStore) getSession(sessionID uuid.UUID) *session {
	s.mu.RLock()
	entry, exists := s.sessions[sessionID]
	s.mu.RUnlock()
	if exists {
		return entry
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Double check after acquiring write lock
	if entry, exists := s.sessions[sessionID]; exists {
		return entry
	}

	entry = &session{cart: entity.Cart{SessionID: sessionID}}
	s.sessions[sessionID] = entry
	return entry
}

// Mutate runs fn against the session's cart under the session lock. When fn
// fails the cart is restored, so a failed operation is a strict no-op.
func (s *MemoryStore) Mutate(ctx context.Context, sessionID uuid.UUID, fn func(cart *entity.Cart) error) (*entity.Cart, error) {
	entry := s.getSession(sessionID)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	backup := entry.cart.Clone()
	if err := fn(&entry.cart); err != nil {
		entry.cart = *backup
		return nil, err
	}

	entry.cart.UpdatedAt = time.Now()
	return entry.cart.Clone(), nil
}

// Snapshot returns a detached copy of the session's cart
func (s *MemoryStore) Snapshot(ctx context.Context, sessionID uuid.UUID) (*entity.Cart, error) {
	entry := s.getSession(sessionID)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	return entry.cart.Clone(), nil
}

// Clear empties the session's cart unconditionally
func (s *MemoryStore) Clear(ctx context.Context, sessionID uuid.UUID) error {
	entry := s.getSession(sessionID)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	entry.cart.Items = nil
	entry.cart.UpdatedAt = time.Now()
	return nil
}

// cleanupLoop periodically drops carts of long-gone sessions
func (s *MemoryStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCleanup:
			return
		}
	}
}

func (s *MemoryStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-SessionTTL)
	for id, entry := range s.sessions {
		entry.mu.Lock()
		stale := !entry.cart.UpdatedAt.IsZero() && entry.cart.UpdatedAt.Before(cutoff)
		entry.mu.Unlock()
		if stale {
			delete(s.sessions, id)
		}
	}
}

// Close stops the background cleanup and waits for it to finish
func (s *MemoryStore) Close() error {
	close(s.stopCleanup)
	s.wg.Wait()
	return nil
}
