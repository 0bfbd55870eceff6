// Package session is the single source of truth for "is the caller
// authenticated". It keeps the current session in memory, persists it to a
// local sqlite database so a restart recovers it, and notifies subscribers
// synchronously after every successful mutation. External changes to the
// durable state (another process using the same database) are picked up via
// Refresh, which feeds the same notification path.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dkaras/relocost/internal/common"
	"github.com/dkaras/relocost/internal/dbx"
	"github.com/dkaras/relocost/internal/models"
)

// Session is an immutable snapshot of the authentication state.
// Invariant: User is non-nil if and only if Token is non-empty.
type Session struct {
	Token string
	User  *models.Identity
}

// Authenticated reports whether a credential is present.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

func (s Session) equal(other Session) bool {
	if s.Token != other.Token {
		return false
	}
	if (s.User == nil) != (other.User == nil) {
		return false
	}
	return s.User == nil || *s.User == *other.User
}

// Store owns the session value. All mutations go through Set/Clear; readers
// get immutable snapshots.
type Store struct {
	db *sql.DB

	mu      sync.RWMutex
	cur     Session
	subs    map[int]func(Session)
	nextSub int
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, subs: make(map[int]func(Session))}
}

// Load recovers the persisted session into memory. A token without a stored
// identity (or vice versa) violates the session invariant; such remnants are
// wiped rather than half-restored.
func (s *Store) Load(ctx context.Context) error {
	repo := NewSQLiteRepository(s.db)

	token, err := repo.Get(ctx, common.SessionTokenKey)
	if err != nil {
		return err
	}
	userData, err := repo.Get(ctx, common.SessionUserKey)
	if err != nil {
		return err
	}

	loaded, ok := decodeSession(token, userData)
	if !ok {
		return s.Clear(ctx)
	}

	s.mu.Lock()
	s.cur = loaded
	s.mu.Unlock()
	return nil
}

// Get returns the current in-memory snapshot.
func (s *Store) Get() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySession(s.cur)
}

// Token returns the current credential, or "" when unauthenticated.
// It satisfies the gateway's token source contract.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.Token
}

// Set stores the credential and identity durably and in memory, then
// notifies subscribers. An empty token clears the session entirely.
// Both durable keys are written in one transaction so a crash cannot leave
// one without the other.
func (s *Store) Set(ctx context.Context, token string, user *models.Identity) error {
	if token == "" {
		return s.Clear(ctx)
	}
	if user == nil {
		return fmt.Errorf("session: identity is required with a credential")
	}

	userData, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal identity: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.SessionTokenKey, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, common.SessionUserKey, userData)
	})
	if err != nil {
		return err
	}

	u := *user
	s.apply(Session{Token: token, User: &u})
	return nil
}

// Clear wipes the session durably and in memory, then notifies subscribers.
// Used on explicit logout and on an authentication-rejected response.
func (s *Store) Clear(ctx context.Context) error {
	repo := NewSQLiteRepository(s.db)
	if err := repo.Clear(ctx); err != nil {
		return err
	}

	s.apply(Session{})
	return nil
}

// Refresh re-reads the durable state and, if it differs from the in-memory
// snapshot, applies it and notifies subscribers. This is the hook for
// observing changes made by another process sharing the database file.
func (s *Store) Refresh(ctx context.Context) error {
	repo := NewSQLiteRepository(s.db)

	token, err := repo.Get(ctx, common.SessionTokenKey)
	if err != nil {
		return err
	}
	userData, err := repo.Get(ctx, common.SessionUserKey)
	if err != nil {
		return err
	}

	loaded, ok := decodeSession(token, userData)
	if !ok {
		loaded = Session{}
	}

	s.mu.RLock()
	changed := !s.cur.equal(loaded)
	s.mu.RUnlock()

	if changed {
		s.apply(loaded)
	}
	return nil
}

// Subscribe registers fn to be called synchronously after every successful
// mutation. The returned function unsubscribes.
func (s *Store) Subscribe(fn func(Session)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// apply swaps the in-memory snapshot and notifies subscribers on the calling
// goroutine. Subscribers receive the new snapshot directly and must not
// block.
func (s *Store) apply(next Session) {
	s.mu.Lock()
	s.cur = next
	subs := make([]func(Session), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(copySession(next))
	}
}

func copySession(s Session) Session {
	if s.User == nil {
		return Session{Token: s.Token}
	}
	u := *s.User
	return Session{Token: s.Token, User: &u}
}

// decodeSession turns the two raw storage values into a Session. ok is false
// when the stored state is partial or unreadable and should be discarded.
func decodeSession(token, userData []byte) (Session, bool) {
	if len(token) == 0 && len(userData) == 0 {
		return Session{}, true
	}
	if len(token) == 0 || len(userData) == 0 {
		return Session{}, false
	}
	var user models.Identity
	if err := json.Unmarshal(userData, &user); err != nil {
		return Session{}, false
	}
	return Session{Token: string(token), User: &user}, true
}
