// CLAUDE:SUMMARY Persistence contract: session snapshot shape, per-user key, and the abstract keyed Store.
package match

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Store.Load when no snapshot exists under the
// key. It is distinct from transport or I/O failures, which are returned
// as ordinary errors.
var ErrNotFound = errors.New("session not found")

// ErrInvalidArgument rejects malformed assignment arguments, such as a
// blank clean name.
var ErrInvalidArgument = errors.New("invalid argument")

// CurrentSlot is the single session slot addressed per user. There is no
// multi-session addressing.
const CurrentSlot = "current"

// Key addresses one persisted session: application namespace, authenticated
// user id, and the fixed slot.
type Key struct {
	Namespace string
	UserID    string
	Slot      string
}

// CurrentKey builds the key for a user's single "current" session slot.
func CurrentKey(namespace, userID string) Key {
	return Key{Namespace: namespace, UserID: userID, Slot: CurrentSlot}
}

// Snapshot is the wire form of a session. Fields are optional: a nil field
// in a loaded snapshot means "absent", and merging leaves the corresponding
// in-memory collection untouched (see SessionModel.Load).
type Snapshot struct {
	RawInputs   []RawInput     `json:"raw_inputs,omitempty"`
	CleanNames  []string       `json:"clean_names,omitempty"`
	Matches     map[int]string `json:"matches,omitempty"`
	LastUpdated time.Time      `json:"last_updated"`
}

// Store is the abstract keyed snapshot store the session persists through.
// Transport, authentication, and storage format are the implementation's
// concern. Overlapping saves are not serialized here; the last write
// observed by the store wins.
type Store interface {
	Save(ctx context.Context, key Key, snap *Snapshot) error
	// Load returns ErrNotFound when nothing is stored under key.
	Load(ctx context.Context, key Key) (*Snapshot, error)
}
