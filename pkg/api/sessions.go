// CLAUDE:SUMMARY Per-user session registry: lazy creation, clean-name seeding, hot reseed.
package api

import (
	"sync"

	"github.com/hazyhaar/crosswalk/pkg/match"
)

// AnonymousUser is the caller identity when no X-User-ID header is sent.
const AnonymousUser = "anonymous"

// Sessions hands out one SessionModel per user, created on first touch and
// seeded with the configured clean-name list. Exactly one session slot
// ("current") exists per user.
type Sessions struct {
	mu        sync.Mutex
	store     match.Store
	namespace string
	seed      []string
	byUser    map[string]*match.SessionModel
}

// NewSessions creates a registry persisting through store under namespace.
func NewSessions(store match.Store, namespace string) *Sessions {
	return &Sessions{
		store:     store,
		namespace: namespace,
		byUser:    make(map[string]*match.SessionModel),
	}
}

// ForUser returns the user's session, creating and seeding it on first use.
// An empty user id maps to AnonymousUser.
func (s *Sessions) ForUser(userID string) *match.SessionModel {
	if userID == "" {
		userID = AnonymousUser
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.byUser[userID]
	if !ok {
		sess = match.NewSessionModel(s.store, match.CurrentKey(s.namespace, userID))
		if len(s.seed) > 0 {
			sess.AddCleanNames(s.seed)
		}
		s.byUser[userID] = sess
	}
	return sess
}

// SeedCleanNames replaces the seed list for future sessions and appends the
// names to every live session. Appending is idempotent (duplicates are
// suppressed on insert), so a reseed with the same file is a no-op.
func (s *Sessions) SeedCleanNames(names []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seed = names
	for _, sess := range s.byUser {
		sess.AddCleanNames(names)
	}
}

// Count reports the number of live sessions.
func (s *Sessions) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byUser)
}
